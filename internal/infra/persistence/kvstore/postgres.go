package kvstore

import (
	"context"
	"time"

	"tapify/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storageRecord is the single-table layout for the postgres driver. Each
// collection lives whole in one row, keyed by its versioned name.
type storageRecord struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (storageRecord) TableName() string {
	return "storage_records"
}

// postgresKV stores payloads in a storage_records table through GORM.
type postgresKV struct {
	db *gorm.DB
}

// NewPostgresKV wraps an existing GORM connection and ensures the
// storage table exists.
func NewPostgresKV(db *gorm.DB) (KV, error) {
	if err := db.AutoMigrate(&storageRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate storage_records")
	}

	return &postgresKV{db: db}, nil
}

func (p *postgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record storageRecord
	err := p.db.WithContext(ctx).
		Where("storage_key = ?", key).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "read storage record %s", key)
	}

	return record.Payload, true, nil
}

func (p *postgresKV) Set(ctx context.Context, key string, value []byte) error {
	record := storageRecord{
		StorageKey: key,
		Payload:    value,
		UpdatedAt:  time.Now().UTC(),
	}

	err := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return errors.Wrapf(err, "write storage record %s", key)
	}

	return nil
}

func (p *postgresKV) Delete(ctx context.Context, key string) error {
	err := p.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&storageRecord{}).Error
	if err != nil {
		return errors.Wrapf(err, "delete storage record %s", key)
	}

	return nil
}
