// internal/models/chat.go
package models

import "time"

// Response status tags.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// Intent categories produced by the classifier.
const (
	IntentParkingQuery    = "parking_query"
	IntentTimeQuery       = "time_query"
	IntentLocationQuery   = "location_query"
	IntentPreferenceQuery = "preference_query"
	IntentGreeting        = "greeting"
	IntentGeneral         = "general"
)

// ChatRequest is the inbound free-text message. Message is deliberately not
// required at the binding layer: an empty message is a valid conversational
// turn and gets the location prompt, not a 400.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ChatData is the optional data block of a reply.
type ChatData struct {
	Location string          `json:"location,omitempty"`
	Listings []ScoredListing `json:"listings,omitempty"`
	IsMock   bool            `json:"is_mock"`
}

// ChatResponse is the reply payload.
type ChatResponse struct {
	Message     string    `json:"message"`
	Response    string    `json:"response"`
	Data        *ChatData `json:"data,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}
