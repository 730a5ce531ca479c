package share

import (
	"encoding/base64"
	"encoding/json"

	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
)

// OfflineFragmentPrefix marks an offline payload in a shared URL
// fragment, e.g. https://host/#off=<payload>.
const OfflineFragmentPrefix = "#off="

// offlineCard is the compact-key wire form of a card. Short keys keep
// the encoded fragment inside NFC tag and QR capacity limits.
type offlineCard struct {
	ID             string `json:"i,omitempty"`
	UserID         string `json:"u,omitempty"`
	Name           string `json:"n,omitempty"`
	Title          string `json:"t,omitempty"`
	Company        string `json:"c,omitempty"`
	Email          string `json:"e,omitempty"`
	Phone          string `json:"p,omitempty"`
	Website        string `json:"w,omitempty"`
	LinkedIn       string `json:"l,omitempty"`
	Twitter        string `json:"x,omitempty"`
	Facebook       string `json:"f,omitempty"`
	Instagram      string `json:"g,omitempty"`
	WhatsAppNumber string `json:"wa,omitempty"`
	Address        string `json:"a,omitempty"`
	ProfileImage   string `json:"pi,omitempty"`
	BackgroundURL  string `json:"bu,omitempty"`
	BackgroundBlur int    `json:"bb,omitempty"`
	ThemeColor     string `json:"tc,omitempty"`
	Template       string `json:"tp,omitempty"`
	Theme          string `json:"th,omitempty"`
	Orientation    string `json:"or,omitempty"`
	FontFamily     string `json:"ff,omitempty"`
	Language       string `json:"lg,omitempty"`
	Bio            string `json:"b,omitempty"`
	CreatedAt      int64  `json:"ct,omitempty"`
}

// EncodeOffline packs the card into a base64url payload that a viewer
// can decode without any store lookup.
func EncodeOffline(card *entity.BusinessCard) (string, error) {
	compact := offlineCard{
		ID:             card.ID,
		UserID:         card.UserID,
		Name:           card.Name,
		Title:          card.Title,
		Company:        card.Company,
		Email:          card.Email,
		Phone:          card.Phone,
		Website:        card.Website,
		LinkedIn:       card.LinkedIn,
		Twitter:        card.Twitter,
		Facebook:       card.Facebook,
		Instagram:      card.Instagram,
		WhatsAppNumber: card.WhatsAppNumber,
		Address:        card.Address,
		ProfileImage:   card.ProfileImage,
		BackgroundURL:  card.BackgroundURL,
		BackgroundBlur: card.BackgroundBlur,
		ThemeColor:     card.ThemeColor,
		Template:       string(card.Template),
		Theme:          string(card.Theme),
		Orientation:    string(card.Orientation),
		FontFamily:     card.FontFamily,
		Language:       string(card.Language),
		Bio:            card.Bio,
		CreatedAt:      card.CreatedAt,
	}

	payload, err := json.Marshal(compact)
	if err != nil {
		return "", domainerrors.ErrInternalError.WithDetails(err.Error())
	}

	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// DecodeOffline unpacks a payload produced by EncodeOffline.
func DecodeOffline(payload string) (*entity.BusinessCard, error) {
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("offline payload is not valid base64url")
	}

	var compact offlineCard
	if err := json.Unmarshal(raw, &compact); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("offline payload is not valid JSON")
	}

	return &entity.BusinessCard{
		ID:             compact.ID,
		UserID:         compact.UserID,
		Name:           compact.Name,
		Title:          compact.Title,
		Company:        compact.Company,
		Email:          compact.Email,
		Phone:          compact.Phone,
		Website:        compact.Website,
		LinkedIn:       compact.LinkedIn,
		Twitter:        compact.Twitter,
		Facebook:       compact.Facebook,
		Instagram:      compact.Instagram,
		WhatsAppNumber: compact.WhatsAppNumber,
		Address:        compact.Address,
		ProfileImage:   compact.ProfileImage,
		BackgroundURL:  compact.BackgroundURL,
		BackgroundBlur: compact.BackgroundBlur,
		ThemeColor:     compact.ThemeColor,
		Template:       entity.CardTemplate(compact.Template),
		Theme:          entity.CardTheme(compact.Theme),
		Orientation:    entity.CardOrientation(compact.Orientation),
		FontFamily:     compact.FontFamily,
		Language:       entity.CardLanguage(compact.Language),
		Bio:            compact.Bio,
		CreatedAt:      compact.CreatedAt,
	}, nil
}
