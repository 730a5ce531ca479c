package kvstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tapify/internal/domain/entity"
	domainerrors "tapify/internal/domain/errors"
	"tapify/internal/domain/repository"

	"github.com/google/uuid"
)

// collectionStore implements the whole-collection store over a KV
// backend. Every read decodes defensively: a missing or malformed
// payload yields an empty collection so a corrupted record can never
// lock users out.
type collectionStore struct {
	kv     KV
	logger *slog.Logger
	now    func() int64
}

// NewStore creates a collection store over the given KV backend.
func NewStore(kv KV, logger *slog.Logger) repository.Store {
	return &collectionStore{
		kv:     kv,
		logger: logger,
		now:    nowUnixMilli,
	}
}

func (s *collectionStore) Users(ctx context.Context) ([]entity.User, error) {
	return readCollection[entity.User](ctx, s, repository.KeyUsers)
}

func (s *collectionStore) PutUsers(ctx context.Context, users []entity.User) error {
	return writeCollection(ctx, s, repository.KeyUsers, users)
}

func (s *collectionStore) Cards(ctx context.Context) ([]entity.BusinessCard, error) {
	return readCollection[entity.BusinessCard](ctx, s, repository.KeyCards)
}

func (s *collectionStore) PutCards(ctx context.Context, cards []entity.BusinessCard) error {
	return writeCollection(ctx, s, repository.KeyCards, cards)
}

func (s *collectionStore) Logs(ctx context.Context) ([]entity.ActivityLog, error) {
	return readCollection[entity.ActivityLog](ctx, s, repository.KeyLogs)
}

func (s *collectionStore) PutLogs(ctx context.Context, logs []entity.ActivityLog) error {
	if len(logs) > repository.MaxLogEntries {
		logs = logs[:repository.MaxLogEntries]
	}

	return writeCollection(ctx, s, repository.KeyLogs, logs)
}

// AppendLog stamps the entry, prepends it and truncates the log to the
// newest MaxLogEntries before writing back.
func (s *collectionStore) AppendLog(ctx context.Context, entry entity.ActivityLog) (entity.ActivityLog, error) {
	logs, err := s.Logs(ctx)
	if err != nil {
		return entity.ActivityLog{}, err
	}

	entry.ID = "log_" + uuid.NewString()
	entry.Timestamp = s.now()

	updated := make([]entity.ActivityLog, 0, len(logs)+1)
	updated = append(updated, entry)
	updated = append(updated, logs...)
	if len(updated) > repository.MaxLogEntries {
		updated = updated[:repository.MaxLogEntries]
	}

	if err := writeCollection(ctx, s, repository.KeyLogs, updated); err != nil {
		return entity.ActivityLog{}, err
	}

	return entry, nil
}

func (s *collectionStore) Wallet(ctx context.Context) ([]entity.WalletEntry, error) {
	return readCollection[entity.WalletEntry](ctx, s, repository.KeyWallet)
}

func (s *collectionStore) PutWallet(ctx context.Context, entries []entity.WalletEntry) error {
	return writeCollection(ctx, s, repository.KeyWallet, entries)
}

func (s *collectionStore) Session(ctx context.Context) (*entity.User, error) {
	payload, ok, err := s.kv.Get(ctx, repository.KeySession)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "read "+repository.KeySession)
	}
	if !ok {
		return nil, nil
	}

	var user entity.User
	if err := json.Unmarshal(payload, &user); err != nil {
		s.logger.Warn("Malformed session payload, treating as signed out",
			slog.String("key", repository.KeySession),
			slog.Any("error", err),
		)

		return nil, nil
	}

	return &user, nil
}

func (s *collectionStore) SetSession(ctx context.Context, user *entity.User) error {
	if user == nil {
		if err := s.kv.Delete(ctx, repository.KeySession); err != nil {
			return domainerrors.NewStoreExecuteError(err, "delete "+repository.KeySession)
		}

		return nil
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return domainerrors.NewStoreExecuteError(err, "encode "+repository.KeySession)
	}

	if err := s.kv.Set(ctx, repository.KeySession, payload); err != nil {
		return domainerrors.NewStoreExecuteError(err, "write "+repository.KeySession)
	}

	return nil
}

func nowUnixMilli() int64 {
	return time.Now().UnixMilli()
}

func readCollection[T any](ctx context.Context, s *collectionStore, key string) ([]T, error) {
	payload, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, domainerrors.NewStoreExecuteError(err, "read "+key)
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		s.logger.Warn("Malformed collection payload, treating as empty",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func writeCollection[T any](ctx context.Context, s *collectionStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return domainerrors.NewStoreExecuteError(err, "encode "+key)
	}

	if err := s.kv.Set(ctx, key, payload); err != nil {
		return domainerrors.NewStoreExecuteError(err, "write "+key)
	}

	return nil
}
