// internal/pipeline/extract-slots/models.go
package extractslots

import "parkassist/internal/models"

type Input struct {
	Message string                      `json:"message"`
	Context *models.ConversationContext `json:"context"`
}

type Output struct {
	Location      string             `json:"location"`
	TimePhrase    string             `json:"time_phrase"`
	DurationHours int                `json:"duration_hours"`
	Preferences   models.Preferences `json:"preferences"`
}

// HasLocation reports whether anything usable was extracted. The fallback
// keeps whole-message locations, so this is false only for empty input.
func (o *Output) HasLocation() bool {
	return o.Location != ""
}
