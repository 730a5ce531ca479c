// Package ai adapts the Gemini REST API to the card assistant port.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const translatePromptFormat = `Translate the following professional profile fields into %s. Keep the meaning professional and formal. Output ONLY a valid JSON object with the fields: name, title, company, address, bio.

Fields to translate:
Name: %s
Title: %s
Company: %s
Address: %s
Bio: %s`

// geminiAssistant implements CardAssistant against the Gemini
// generateContent REST endpoint.
type geminiAssistant struct {
	apiKey     string
	textModel  string
	imageModel string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGeminiAssistant creates a Gemini-backed card assistant.
func NewGeminiAssistant(apiKey, textModel, imageModel string, logger *slog.Logger) service.CardAssistant {
	return &geminiAssistant{
		apiKey:     apiKey,
		textModel:  textModel,
		imageModel: imageModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig *genConfig      `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type genConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// TranslateCard asks the text model for the card's fields in the target
// language and expects pure JSON back.
func (s *geminiAssistant) TranslateCard(ctx context.Context, card *entity.BusinessCard, target entity.CardLanguage) (*service.TranslatedFields, error) {
	targetName := "English"
	if target == entity.LanguageNepali {
		targetName = "Nepali (Devanagari script)"
	}

	prompt := fmt.Sprintf(translatePromptFormat,
		targetName, card.Name, card.Title, card.Company, card.Address, card.Bio)

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: &genConfig{
			ResponseMIMEType: "application/json",
		},
	}

	gemResp, err := s.generate(ctx, s.textModel, &payload)
	if err != nil {
		return nil, err
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, domainerrors.ErrExternalService.WithDetails("empty model response")
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)

	var fields service.TranslatedFields
	if err := json.Unmarshal([]byte(rawJSON), &fields); err != nil {
		s.logger.Error("Model returned non-JSON translation",
			slog.String("model", s.textModel),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrExternalService.WithDetails("model response is not valid JSON")
	}

	return &fields, nil
}

// EditImage sends the image and instruction to the image model and
// returns the first inline image part as a PNG data URI.
func (s *geminiAssistant) EditImage(ctx context.Context, imageDataURI, prompt string) (string, error) {
	mimeType, base64Data, err := splitDataURI(imageDataURI)
	if err != nil {
		return "", err
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &inlineData{MimeType: mimeType, Data: base64Data}},
					{Text: fmt.Sprintf("Please edit this image based on this instruction: %s. Return the modified image.", prompt)},
				},
			},
		},
	}

	gemResp, err := s.generate(ctx, s.imageModel, &payload)
	if err != nil {
		return "", err
	}

	for _, candidate := range gemResp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return "data:image/png;base64," + part.InlineData.Data, nil
			}
		}
	}

	return "", domainerrors.ErrExternalService.WithDetails("no image data returned from model")
}

func (s *geminiAssistant) generate(ctx context.Context, model string, payload *geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("Gemini request failed",
			slog.String("model", model),
			slog.Any("error", err),
		)

		return nil, domainerrors.ErrExternalService.WithDetails(err.Error())
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, domainerrors.ErrExternalService.WithDetails(err.Error())
	}

	var gemResp geminiResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &gemResp); jsonErr == nil && gemResp.Error != nil {
			s.logger.Error("Gemini returned error",
				slog.String("model", model),
				slog.Int("code", gemResp.Error.Code),
				slog.String("message", gemResp.Error.Message),
			)

			return nil, domainerrors.ErrExternalService.WithDetails(gemResp.Error.Message)
		}

		return nil, domainerrors.ErrExternalService.WithDetails(fmt.Sprintf("gemini HTTP %d", resp.StatusCode))
	}

	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, domainerrors.ErrExternalService.WithDetails("malformed model response")
	}

	return &gemResp, nil
}

// splitDataURI separates "data:image/png;base64,AAAA" into its mime
// type and payload.
func splitDataURI(dataURI string) (mimeType, base64Data string, err error) {
	header, data, found := strings.Cut(dataURI, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("image must be a base64 data URI")
	}

	mimeType = strings.TrimPrefix(strings.TrimSuffix(header, ";base64"), "data:")
	if mimeType == "" || data == "" {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("image must be a base64 data URI")
	}

	return mimeType, data, nil
}
