package slotRepo

import (
	"context"
	"sync"
)

// MemorySlotRepo keeps slots in process memory. Values do not survive a restart.
type MemorySlotRepo struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepo creates an empty in-memory repository.
func NewMemorySlotRepo() *MemorySlotRepo {
	return &MemorySlotRepo{slots: make(map[string][]byte)}
}

func (r *MemorySlotRepo) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (r *MemorySlotRepo) Save(_ context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	r.mu.Lock()
	r.slots[key] = stored
	r.mu.Unlock()
	return nil
}

func (r *MemorySlotRepo) Delete(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	r.mu.Lock()
	delete(r.slots, key)
	r.mu.Unlock()
	return nil
}
