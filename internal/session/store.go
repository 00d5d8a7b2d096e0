// Package session provides the conversation context store. The original
// design kept contexts in a process-global map with no eviction; this
// version puts an explicit Store interface in front with a TTL on every
// write so memory stays bounded and concurrent requests for one user cannot
// corrupt each other mid-field.
package session

import (
	"context"
	"errors"
	"time"

	"parkassist/internal/models"
)

// ErrNotFound is returned when no context exists for the user identifier.
var ErrNotFound = errors.New("session: context not found")

// Store is the capability surface the orchestrator depends on.
type Store interface {
	// Get returns the stored context, or ErrNotFound.
	Get(ctx context.Context, userID string) (*models.ConversationContext, error)
	// Put stores the context and refreshes its TTL.
	Put(ctx context.Context, userID string, cc *models.ConversationContext) error
	// Evict removes the context. Evicting an absent key is not an error.
	Evict(ctx context.Context, userID string) error
}

// GetOrNew returns the stored context for userID, or a fresh one when the
// store has nothing (including store read failures, which callers treat as
// a cache miss).
func GetOrNew(ctx context.Context, s Store, userID string) *models.ConversationContext {
	cc, err := s.Get(ctx, userID)
	if err != nil || cc == nil {
		return models.NewConversationContext(userID)
	}
	return cc
}

func defaultTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}
