package extractslots

import (
	"regexp"
	"strconv"
	"strings"

	"parkassist/internal/common/logger"
	"parkassist/internal/models"
)

const TaskType = "extract-slots"

var (
	// Location: preposition-anchored phrase, with a trailing duration
	// clause stripped; or a "parking <place>" form.
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:near|in|at|around|close\s+to)\s+(.+?)(?:\s+for\s+\d+.*)?$`),
		regexp.MustCompile(`^park(?:ing)?\s+(.+?)(?:\s+for\s+\d+.*)?$`),
	}

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(morning|afternoon|evening|tonight|noon|midnight|now)\b`),
		regexp.MustCompile(`\bat\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\b`),
	}

	durationPattern = regexp.MustCompile(`(\d+)\s*h(?:ou)?rs?\b`)

	preferencePatterns = map[string]*regexp.Regexp{
		"free":       regexp.MustCompile(`\b(?:free|no\s+charge|without\s+paying)\b`),
		"covered":    regexp.MustCompile(`\b(?:covered|indoor|underground|multi-?store?y|garage)\b`),
		"ev":         regexp.MustCompile(`\b(?:ev|electric|charg(?:er|ing|e))\b`),
		"accessible": regexp.MustCompile(`\b(?:accessible|disabled|blue\s+badge|wheelchair)\b`),
		"longterm":   regexp.MustCompile(`\b(?:long[\s-]?term|overnight|all\s+day|weekly|season\s+ticket)\b`),
	}
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute extracts slots from the message and overwrites the context with
// them. Time and duration retain the context's prior values when the
// message is silent; preferences are recomputed fresh on every call.
func (h *Handler) Execute(input *Input) *Output {
	message := strings.ToLower(strings.TrimSpace(input.Message))
	cc := input.Context

	out := &Output{
		Location:      h.extractLocation(message),
		TimePhrase:    h.extractTime(message, cc.TimePhrase),
		DurationHours: h.extractDuration(message, cc.DurationHours),
		Preferences:   extractPreferences(message),
	}

	cc.Location = out.Location
	cc.TimePhrase = out.TimePhrase
	cc.DurationHours = out.DurationHours
	cc.Preferences = out.Preferences

	h.logger.Debug("slots extracted", map[string]interface{}{
		"location": out.Location,
		"time":     out.TimePhrase,
		"duration": out.DurationHours,
	})

	return out
}

// extractLocation tries the location patterns in order and falls back to
// the whole normalized message. The fallback is deliberate: a message like
// "camden town" is a location query with no preposition. Empty input stays
// empty so the orchestrator can prompt instead of geocoding nothing.
func (h *Handler) extractLocation(message string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return message
}

func (h *Handler) extractTime(message, prior string) string {
	for _, p := range timePatterns {
		if m := p.FindStringSubmatch(message); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	if prior != "" {
		return prior
	}
	return "now"
}

func (h *Handler) extractDuration(message string, prior int) int {
	if m := durationPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	return prior
}

func extractPreferences(message string) models.Preferences {
	return models.Preferences{
		Free:       preferencePatterns["free"].MatchString(message),
		Covered:    preferencePatterns["covered"].MatchString(message),
		EVCharging: preferencePatterns["ev"].MatchString(message),
		Accessible: preferencePatterns["accessible"].MatchString(message),
		LongTerm:   preferencePatterns["longterm"].MatchString(message),
	}
}
