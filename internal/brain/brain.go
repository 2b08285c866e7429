// Package brain provides the bot's durable key/value storage and its
// SQLite implementation.
package brain

import "context"

// Brain is a small key/value facility. Values are opaque blobs; the
// phrase store keeps its whole mapping under a single key.
type Brain interface {
	// Get returns the value for key. ok is false when the key has
	// never been set.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close closes the brain.
	Close() error
}
