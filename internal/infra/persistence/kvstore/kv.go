// Package kvstore implements the collection store over a pluggable
// key-value backend. Collections are stored whole as JSON payloads
// under versioned keys.
package kvstore

import "context"

// KV is the raw byte-payload backend behind the collection store.
type KV interface {
	// Get returns the payload under key. The second return is false when
	// the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the payload under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
