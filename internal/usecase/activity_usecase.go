package usecase

import (
	"context"

	"tapify/internal/domain/entity"
)

// ActivityUsecase records and reads the capped activity log. Record is
// the single append path: it stamps the entry, persists it newest-first
// and publishes an ActivityEvent for downstream consumers.
type ActivityUsecase interface {
	Record(ctx context.Context, userID, userEmail string, action entity.ActivityAction, details string) (entity.ActivityLog, error)

	// List returns the log newest-first.
	List(ctx context.Context) ([]entity.ActivityLog, error)

	// CountsByAction groups the log for the admin dashboard.
	CountsByAction(ctx context.Context) (map[entity.ActivityAction]int, error)
}
