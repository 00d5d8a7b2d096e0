package classifyintent

import (
	"testing"

	"parkassist/internal/common/logger"
	"parkassist/internal/models"

	"github.com/stretchr/testify/assert"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(logger.NewTestLogger(t))
}

func TestHandler_Execute_Greetings(t *testing.T) {
	h := newTestHandler(t)

	greetings := []string{
		"hello",
		"Hi there!",
		"hey",
		"Good morning",
		"good evening",
		"thanks a lot",
		"how are you?",
	}

	for _, msg := range greetings {
		out := h.Execute(&Input{Message: msg})
		assert.Equal(t, models.IntentGreeting, out.Intent, "message: %q", msg)
		assert.Greater(t, out.Confidence, 0.0)
	}
}

func TestHandler_Execute_ParkingQueries(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"simple", "find parking near oxford street"},
		{"car park", "is there a car park around here"},
		{"where can i park", "where can I park in camden"},
		{"ev mixed", "Find EV parking near Oxford Street for 3 hours"},
	}

	h := newTestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Execute(&Input{Message: tt.message})
			assert.Equal(t, models.IntentParkingQuery, out.Intent)
		})
	}
}

func TestHandler_Execute_OtherIntents(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"time", "what time does it close", models.IntentTimeQuery},
		{"location", "where is the nearest one", models.IntentLocationQuery},
		{"preference", "I need a cheap covered option", models.IntentPreferenceQuery},
	}

	h := newTestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Execute(&Input{Message: tt.message})
			assert.Equal(t, tt.want, out.Intent)
		})
	}
}

func TestHandler_Execute_NoMatch_ReturnsGeneral(t *testing.T) {
	h := newTestHandler(t)

	for _, msg := range []string{"", "xyzzy", "the weather is nice"} {
		out := h.Execute(&Input{Message: msg})
		assert.Equal(t, models.IntentGeneral, out.Intent, "message: %q", msg)
		assert.Equal(t, 0.5, out.Confidence)
	}
}

func TestHandler_Execute_ConfidenceCappedAtOne(t *testing.T) {
	h := newTestHandler(t)

	// Lots of pattern hits in one message.
	msg := "parking parking parking car park garage spot space bay where can I park parking parking"
	out := h.Execute(&Input{Message: msg})

	assert.Equal(t, models.IntentParkingQuery, out.Intent)
	assert.Equal(t, 1.0, out.Confidence)
}

func TestHandler_Execute_TieBreaksByTableOrder(t *testing.T) {
	h := newTestHandler(t)

	// One parking hit, one preference hit: parking_query precedes
	// preference_query in the table.
	out := h.Execute(&Input{Message: "free parking"})
	assert.Equal(t, models.IntentParkingQuery, out.Intent)
	assert.Equal(t, out.Scores[models.IntentParkingQuery], out.Scores[models.IntentPreferenceQuery])
}
