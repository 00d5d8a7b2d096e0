package session

import (
	"context"
	"sync"
	"time"

	"parkassist/internal/common/metrics"
	"parkassist/internal/models"
)

type memoryEntry struct {
	cc        *models.ConversationContext
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when no Redis address is
// configured. Entries expire after the TTL; expired entries are dropped on
// access and by a periodic sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     defaultTTL(ttl),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*models.ConversationContext, error) {
	s.mu.RLock()
	entry, ok := s.entries[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, userID)
		metrics.ActiveSessions.Set(float64(len(s.entries)))
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	// Copy so callers cannot mutate the stored value without a Put.
	cc := *entry.cc
	return &cc, nil
}

func (s *MemoryStore) Put(_ context.Context, userID string, cc *models.ConversationContext) error {
	copied := *cc
	copied.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	s.entries[userID] = memoryEntry{
		cc:        &copied,
		expiresAt: s.now().Add(s.ttl),
	}
	metrics.ActiveSessions.Set(float64(len(s.entries)))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Evict(_ context.Context, userID string) error {
	s.mu.Lock()
	delete(s.entries, userID)
	metrics.ActiveSessions.Set(float64(len(s.entries)))
	s.mu.Unlock()
	return nil
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			metrics.ActiveSessions.Set(float64(len(s.entries)))
			s.mu.Unlock()
		}
	}
}
