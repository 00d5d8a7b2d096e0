// internal/models/context.go
package models

import "time"

// Preferences are the boolean slot flags extracted fresh on every message.
type Preferences struct {
	Free       bool `json:"free"`
	Covered    bool `json:"covered"`
	EVCharging bool `json:"ev_charging"`
	Accessible bool `json:"accessible"`
	LongTerm   bool `json:"long_term"`
}

// ConversationContext is the per-user slot state carried across messages.
// It is JSON-serialized into the session store and expires with the store's
// TTL rather than living for the process lifetime.
type ConversationContext struct {
	UserID          string      `json:"user_id"`
	Location        string      `json:"location,omitempty"`
	TimePhrase      string      `json:"time_phrase,omitempty"`
	DurationHours   int         `json:"duration_hours,omitempty"`
	Preferences     Preferences `json:"preferences"`
	LastResultCount int         `json:"last_result_count,omitempty"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewConversationContext creates a fresh context for a user identifier.
func NewConversationContext(userID string) *ConversationContext {
	return &ConversationContext{
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}
}
