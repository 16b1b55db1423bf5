package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	slotRepo "hussboss/database/repository/slot"
	"hussboss/models"

	"go.uber.org/zap"
)

// Store owns the single session record of one browser slot.
type Store struct {
	repo   slotRepo.SlotRepository
	key    string
	logger *zap.Logger

	mu     sync.Mutex
	nextID int
	subs   map[int]Listener
}

// NewStore binds a store to the slot of browser slotID.
func NewStore(repo slotRepo.SlotRepository, slotID string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		key:    slotRepo.Key(slotID),
		logger: logger,
		subs:   make(map[int]Listener),
	}
}

// Get reads the stored session. An empty or unreadable slot means logged out.
func (s *Store) Get(ctx context.Context) (*models.Session, error) {
	data, found, err := s.repo.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if !found || len(data) == 0 {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("Discarding unreadable session slot", zap.String("key", s.key), zap.Error(err))
		return nil, nil
	}
	return &sess, nil
}

// Set replaces the stored session and notifies subscribers.
func (s *Store) Set(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}
	if err := s.repo.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.logger.Debug("Session stored", zap.Int("userID", sess.ID), zap.Bool("isAdmin", sess.IsAdmin))
	s.publish(&sess)
	return nil
}

// Clear removes the stored session and notifies subscribers with nil.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.logger.Debug("Session cleared", zap.String("key", s.key))
	s.publish(nil)
	return nil
}

// Subscribe registers fn for change notifications. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) publish(sess *models.Session) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		if sess == nil {
			fn(nil)
			continue
		}
		cp := *sess
		fn(&cp)
	}
}
