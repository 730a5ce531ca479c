// Package repository defines the persistence ports the use cases depend
// on. Implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"tapify/internal/domain/entity"
)

// Collection keys. Key names carry a version suffix so a schema bump can
// move to a fresh key without migrating old payloads.
const (
	KeyUsers   = "users_v1"
	KeyCards   = "cards_v1"
	KeyLogs    = "activity_logs_v1"
	KeyWallet  = "wallet_v1"
	KeySession = "session_v1"
)

// MaxLogEntries caps the activity log at the most recent entries.
const MaxLogEntries = 1000

// Store is the whole-collection persistence contract. Reads are
// defensive: a missing or malformed payload decodes as an empty
// collection, never an error. Writes replace the entire collection and
// follow last-writer-wins semantics; there are no transactions and no
// partial-write protection.
type Store interface {
	Users(ctx context.Context) ([]entity.User, error)
	PutUsers(ctx context.Context, users []entity.User) error

	Cards(ctx context.Context) ([]entity.BusinessCard, error)
	PutCards(ctx context.Context, cards []entity.BusinessCard) error

	Logs(ctx context.Context) ([]entity.ActivityLog, error)
	PutLogs(ctx context.Context, logs []entity.ActivityLog) error

	// AppendLog assigns the entry an id and timestamp, prepends it to
	// the log and truncates to the newest MaxLogEntries before writing
	// back. Returns the stored entry.
	AppendLog(ctx context.Context, entry entity.ActivityLog) (entity.ActivityLog, error)

	Wallet(ctx context.Context) ([]entity.WalletEntry, error)
	PutWallet(ctx context.Context, entries []entity.WalletEntry) error

	// Session returns the single persisted session user, or nil when no
	// session is active. SetSession with nil clears it.
	Session(ctx context.Context) (*entity.User, error)
	SetSession(ctx context.Context, user *entity.User) error
}
