package slotRepo

import (
	"context"
	"errors"
)

// KeyPrefix namespaces slot keys in shared stores.
const KeyPrefix = "session:"

// ErrEmptyKey is returned when a slot is addressed without a key.
var ErrEmptyKey = errors.New("slot key is empty")

// SlotRepository stores one opaque value per key. A missing key is not an
// error: Load reports it with found == false.
type SlotRepository interface {
	// Load returns the value stored under key.
	Load(ctx context.Context, key string) (data []byte, found bool, err error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a browser slot ID.
func Key(slotID string) string {
	return KeyPrefix + slotID
}
