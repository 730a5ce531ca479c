package impl

import (
	"context"
	"fmt"
	"log/slog"

	"tapify/config"
	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/service"
	"tapify/internal/share"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// shareService implements the ShareUsecase interface.
type shareService struct {
	cards          usecase.CardUsecase
	activity       usecase.ActivityUsecase
	qr             service.QRCodeService
	baseURL        string
	whatsAppNumber string
	logger         *slog.Logger
}

// ShareServiceParams holds dependencies for ShareService, injected by Fx.
type ShareServiceParams struct {
	fx.In

	Cards    usecase.CardUsecase
	Activity usecase.ActivityUsecase
	QR       service.QRCodeService
	Config   *config.Config
	Logger   *slog.Logger
}

// NewShareService is the constructor for shareService.
func NewShareService(params ShareServiceParams) usecase.ShareUsecase {
	baseURL := ""
	whatsAppNumber := ""
	if params.Config.Share != nil {
		baseURL = params.Config.Share.BaseURL
		whatsAppNumber = params.Config.Share.OrderWhatsAppNumber
	}

	return &shareService{
		cards:          params.Cards,
		activity:       params.Activity,
		qr:             params.QR,
		baseURL:        baseURL,
		whatsAppNumber: whatsAppNumber,
		logger:         params.Logger,
	}
}

func (srv *shareService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Payloads bundles every export form of the card.
func (srv *shareService) Payloads(ctx context.Context, cardID string) (*usecase.SharePayloadsOutput, error) {
	card, err := srv.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	return srv.buildPayloads(card)
}

func (srv *shareService) buildPayloads(card *entity.BusinessCard) (*usecase.SharePayloadsOutput, error) {
	offline, err := share.EncodeOffline(card)
	if err != nil {
		return nil, err
	}

	return &usecase.SharePayloadsOutput{
		ShareURL:        share.CardURL(srv.baseURL, card.ID),
		VCard:           share.VCard(card),
		VCardFilename:   share.VCardFilename(card),
		OfflineFragment: share.OfflineFragmentPrefix + offline,
	}, nil
}

// QRCode renders either the share URL or the full vCard as a PNG.
func (srv *shareService) QRCode(ctx context.Context, cardID, kind string) ([]byte, error) {
	card, err := srv.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	var payload string
	switch kind {
	case usecase.QRKindURL, "":
		payload = share.CardURL(srv.baseURL, card.ID)
	case usecase.QRKindVCard:
		payload = share.VCard(card)
	default:
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown qr payload kind")
	}

	png, err := srv.qr.GeneratePNG(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render qr code")
	}

	return png, nil
}

// WriteNFC validates the reported client environment and records the
// write. The browser owns the NFC primitive; the service only decides
// whether the environment permits it and keeps the audit trail.
func (srv *shareService) WriteNFC(ctx context.Context, user entity.User, input *usecase.NFCWriteInput) (*usecase.SharePayloadsOutput, error) {
	card, err := srv.cards.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != user.ID {
		return nil, errors.Wrap(domainerrors.ErrCardOwnershipViolation, "nfc write rejected")
	}

	if input.Embedded {
		return nil, errors.Wrap(domainerrors.ErrEnvironmentRestricted, "nfc write rejected")
	}
	if !input.NFCSupported {
		return nil, errors.Wrap(domainerrors.ErrCapabilityUnavailable, "nfc write rejected")
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionNFCWrite,
		fmt.Sprintf("NFC tag written for %s", card.Name)); err != nil {
		srv.log(ctx).Warn("Failed to record nfc write", slog.Any("error", err))
	}

	return srv.buildPayloads(card)
}

// Order builds the pre-filled WhatsApp order link and records it.
func (srv *shareService) Order(ctx context.Context, user entity.User, cardID string) (*usecase.OrderOutput, error) {
	card, err := srv.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.UserID != user.ID {
		return nil, errors.Wrap(domainerrors.ErrCardOwnershipViolation, "order rejected")
	}

	if _, err := srv.activity.Record(ctx, user.ID, user.Email, entity.ActionOrderNFC,
		fmt.Sprintf("Physical card order initiated for %s", card.Name)); err != nil {
		srv.log(ctx).Warn("Failed to record order", slog.Any("error", err))
	}

	shareURL := share.CardURL(srv.baseURL, card.ID)

	return &usecase.OrderOutput{
		OrderURL: share.OrderURL(srv.whatsAppNumber, card, shareURL),
	}, nil
}

// DecodeOffline decodes an offline fragment payload into a card without
// any store lookup.
func (srv *shareService) DecodeOffline(ctx context.Context, payload string) (*entity.BusinessCard, error) {
	return share.DecodeOffline(payload)
}
