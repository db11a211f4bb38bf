package oauth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StateStore keeps the anti-forgery state values issued at login initiation.
// A state is consumable exactly once and expires after the configured TTL, so
// concurrent logins from different browsers never collide.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) (bool, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

type memoryStateStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]time.Time
}

// NewMemoryStateStore returns a process-local store suitable for a single
// auth-service instance.
func NewMemoryStateStore(ttl time.Duration) StateStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryStateStore{ttl: ttl, states: make(map[string]time.Time)}
}

func (s *memoryStateStore) Issue(_ context.Context) (string, error) {
	state := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	s.states[state] = time.Now().Add(s.ttl)
	return state, nil
}

func (s *memoryStateStore) Consume(_ context.Context, state string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	if _, ok := s.states[state]; !ok {
		return false, nil
	}
	delete(s.states, state)
	return true, nil
}

func (s *memoryStateStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
	return len(s.states), nil
}

func (s *memoryStateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = make(map[string]time.Time)
	return nil
}

func (s *memoryStateStore) cleanupLocked() {
	now := time.Now()
	for state, expiry := range s.states {
		if now.After(expiry) {
			delete(s.states, state)
		}
	}
}
