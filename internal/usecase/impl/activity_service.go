// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "tapify/internal/delivery/context"
	"tapify/internal/domain/entity"
	"tapify/internal/domain/repository"
	"tapify/internal/domain/service"
	"tapify/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// activityService implements the ActivityUsecase interface.
type activityService struct {
	store     repository.Store
	publisher service.EventPublisher
	logger    *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	Store     repository.Store
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		store:     params.Store,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Record appends the entry and publishes it for downstream consumers.
// Publish failures are logged, never surfaced: the audit trail already
// holds the entry.
func (srv *activityService) Record(ctx context.Context, userID, userEmail string, action entity.ActivityAction, details string) (entity.ActivityLog, error) {
	stored, err := srv.store.AppendLog(ctx, entity.ActivityLog{
		UserID:    userID,
		UserEmail: userEmail,
		Action:    action,
		Details:   details,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to append activity log",
			slog.String("action", string(action)),
			slog.Any("error", err),
		)

		return entity.ActivityLog{}, errors.Wrap(err, "failed to append activity log")
	}

	event := &service.ActivityEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		LogID:     stored.ID,
		UserID:    stored.UserID,
		UserEmail: stored.UserEmail,
		Action:    string(stored.Action),
		Details:   stored.Details,
		Timestamp: stored.Timestamp,
	}
	if err := srv.publisher.PublishActivityEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish activity event",
			slog.String("log_id", stored.ID),
			slog.Any("error", err),
		)
	}

	return stored, nil
}

// List returns the log newest-first.
func (srv *activityService) List(ctx context.Context) ([]entity.ActivityLog, error) {
	logs, err := srv.store.Logs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read activity logs")
	}

	return logs, nil
}

// CountsByAction groups the full log linearly; the cap keeps this cheap.
func (srv *activityService) CountsByAction(ctx context.Context) (map[entity.ActivityAction]int, error) {
	logs, err := srv.store.Logs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read activity logs")
	}

	counts := make(map[entity.ActivityAction]int, len(logs))
	for _, entry := range logs {
		counts[entry.Action]++
	}

	return counts, nil
}
