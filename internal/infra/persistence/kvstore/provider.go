package kvstore

import (
	"context"
	"log/slog"

	"tapify/config"
	"tapify/internal/domain/repository"
	"tapify/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Driver names accepted in the store config.
const (
	DriverMemory   = "memory"
	DriverBlob     = "blob"
	DriverPostgres = "postgres"
)

// StoreParams holds dependencies for the Store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewStoreFromConfig creates the collection store over the configured
// KV driver.
func NewStoreFromConfig(params StoreParams) (repository.Store, error) {
	cfg := params.Config.Store
	logger := params.Logger

	var kv KV
	var err error

	switch cfg.Driver {
	case DriverMemory:
		logger.Info("Using in-memory store driver")

		kv = NewMemoryKV()

	case DriverBlob:
		if cfg.BucketURL == "" {
			return nil, errors.New("bucket URL is required for blob driver")
		}
		logger.Info("Using blob store driver",
			slog.String("bucket_url", cfg.BucketURL),
		)

		kv, err = NewBlobKV(params.Ctx, params.Lc, cfg.BucketURL, logger)
		if err != nil {
			return nil, err
		}

	case DriverPostgres:
		if cfg.Postgres == nil {
			return nil, errors.New("postgres connection is required for postgres driver")
		}
		logger.Info("Using postgres store driver")

		db, dbErr := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    logger,
		})
		if dbErr != nil {
			return nil, dbErr
		}

		kv, err = NewPostgresKV(db)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown store driver: %s", cfg.Driver)
	}

	return NewStore(kv, logger), nil
}

// Module provides the store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStoreFromConfig),
)
