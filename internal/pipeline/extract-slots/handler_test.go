package extractslots

import (
	"testing"

	"parkassist/internal/common/logger"
	"parkassist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(logger.NewTestLogger(t))
}

func TestHandler_Execute_FullQuery(t *testing.T) {
	h := newTestHandler(t)
	cc := models.NewConversationContext("user-1")

	out := h.Execute(&Input{
		Message: "Find EV parking near Oxford Street for 3 hours",
		Context: cc,
	})

	assert.Contains(t, out.Location, "oxford street")
	assert.Equal(t, 3, out.DurationHours)
	assert.True(t, out.Preferences.EVCharging)
	assert.False(t, out.Preferences.Free)

	// Context overwritten unconditionally.
	assert.Equal(t, out.Location, cc.Location)
	assert.Equal(t, 3, cc.DurationHours)
	assert.True(t, cc.Preferences.EVCharging)
}

func TestHandler_Execute_LocationPatterns(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"near", "parking near victoria station", "victoria station"},
		{"in", "park in central london", "central london"},
		{"at", "where can i park at leeds station", "leeds station"},
		{"parking prefix", "parking oxford circus", "oxford circus"},
		{"duration stripped", "parking near kings cross for 2 hours", "kings cross"},
	}

	h := newTestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Execute(&Input{Message: tt.message, Context: models.NewConversationContext("u")})
			assert.Equal(t, tt.want, out.Location)
		})
	}
}

// The whole-message fallback is intentional: bare place names carry no
// preposition. It also means non-location text becomes a location query,
// which downstream masks via the synthetic fallback.
func TestHandler_Execute_LocationFallback_WholeMessage(t *testing.T) {
	h := newTestHandler(t)

	out := h.Execute(&Input{Message: "camden town", Context: models.NewConversationContext("u")})
	assert.Equal(t, "camden town", out.Location)
	assert.True(t, out.HasLocation())
}

func TestHandler_Execute_EmptyMessage_NoLocation(t *testing.T) {
	h := newTestHandler(t)

	for _, msg := range []string{"", "   ", "\t\n"} {
		out := h.Execute(&Input{Message: msg, Context: models.NewConversationContext("u")})
		assert.False(t, out.HasLocation(), "message: %q", msg)
	}
}

func TestHandler_Execute_TimeExtraction(t *testing.T) {
	tests := []struct {
		name    string
		message string
		prior   string
		want    string
	}{
		{"word", "parking near leeds this morning", "", "morning"},
		{"clock", "park near leeds at 5pm", "", "5pm"},
		{"prior retained", "parking near leeds", "evening", "evening"},
		{"default now", "parking near leeds", "", "now"},
	}

	h := newTestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := models.NewConversationContext("u")
			cc.TimePhrase = tt.prior
			out := h.Execute(&Input{Message: tt.message, Context: cc})
			assert.Equal(t, tt.want, out.TimePhrase)
		})
	}
}

func TestHandler_Execute_DurationRetainsPrior(t *testing.T) {
	h := newTestHandler(t)

	cc := models.NewConversationContext("u")
	cc.DurationHours = 4

	out := h.Execute(&Input{Message: "parking near leeds", Context: cc})
	assert.Equal(t, 4, out.DurationHours)

	out = h.Execute(&Input{Message: "parking near leeds for 2 hours", Context: cc})
	assert.Equal(t, 2, out.DurationHours)
}

func TestHandler_Execute_PreferencesRecomputedFresh(t *testing.T) {
	h := newTestHandler(t)
	cc := models.NewConversationContext("u")

	out := h.Execute(&Input{Message: "free covered parking near leeds", Context: cc})
	require.True(t, out.Preferences.Free)
	require.True(t, out.Preferences.Covered)

	// A later message without preference words resets the flags.
	out = h.Execute(&Input{Message: "parking near leeds", Context: cc})
	assert.False(t, out.Preferences.Free)
	assert.False(t, out.Preferences.Covered)
	assert.False(t, cc.Preferences.Free)
}

func TestHandler_Execute_AllPreferenceFlags(t *testing.T) {
	h := newTestHandler(t)

	out := h.Execute(&Input{
		Message: "long term accessible ev charging covered free parking near hull",
		Context: models.NewConversationContext("u"),
	})

	assert.True(t, out.Preferences.Free)
	assert.True(t, out.Preferences.Covered)
	assert.True(t, out.Preferences.EVCharging)
	assert.True(t, out.Preferences.Accessible)
	assert.True(t, out.Preferences.LongTerm)
}
