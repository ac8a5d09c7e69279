package interfaces

import (
	"context"
	"errors"
)

// ErrKeyNotFound distinguishes an absent key from a store failure. Callers
// that treat both as a cache miss may still log which one occurred.
var ErrKeyNotFound = errors.New("key not found")

// Cache keys for the flat key-value store. String values, JSON-encoded where
// structured.
const (
	KeyDailyRecord      = "cache"
	KeyUserName         = "userName"
	KeyTrackedStocks    = "trackedStocks"
	KeyNotificationID   = "notificationId"
	KeyNotificationDate = "notificationScheduledDate"
)

// KeyValueStorage is the durable flat key-value cache. Each call is
// independently atomic; there is no cross-key transactionality.
type KeyValueStorage interface {
	// Get retrieves a value. Returns an error wrapping ErrKeyNotFound when
	// the key is absent, and a distinct error when the store itself fails.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, overwriting any existing entry.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// StorageManager owns the cache store lifecycle.
type StorageManager interface {
	KeyValueStorage() KeyValueStorage
	Close() error
}
