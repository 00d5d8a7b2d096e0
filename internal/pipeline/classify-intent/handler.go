package classifyintent

import (
	"regexp"
	"strings"

	"parkassist/internal/common/logger"
	"parkassist/internal/models"
)

const TaskType = "classify-intent"

const matchWeight = 10

// intentPatterns holds one regex list per intent. Slice order is the
// tie-break: the first intent with the top score wins.
type intentPatterns struct {
	intent   string
	patterns []*regexp.Regexp
}

var patternTable = []intentPatterns{
	{
		intent: models.IntentParkingQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpark(?:ing)?\b`),
			regexp.MustCompile(`\bcar\s*park\b`),
			regexp.MustCompile(`\b(?:space|spot|bay)s?\b`),
			regexp.MustCompile(`\bwhere\s+can\s+i\s+(?:park|leave\s+(?:my|the)\s+car)\b`),
			regexp.MustCompile(`\b(?:garage|multi-?store?y)\b`),
		},
	},
	{
		intent: models.IntentTimeQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhat\s+time\b`),
			regexp.MustCompile(`\b(?:opening|closing)\s+(?:time|hour)s?\b`),
			regexp.MustCompile(`\b(?:when)\s+(?:does|do|is|are)\b`),
			regexp.MustCompile(`\bhow\s+long\s+can\b`),
		},
	},
	{
		intent: models.IntentLocationQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhere\s+is\b`),
			regexp.MustCompile(`\b(?:nearby|closest|nearest)\b`),
			regexp.MustCompile(`\bhow\s+far\b`),
			regexp.MustCompile(`\bdirections?\b`),
		},
	},
	{
		intent: models.IntentPreferenceQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:free|cheap(?:est)?)\b`),
			regexp.MustCompile(`\b(?:covered|indoor|secure)\b`),
			regexp.MustCompile(`\b(?:ev|electric|charg(?:er|ing))\b`),
			regexp.MustCompile(`\b(?:accessible|disabled|blue\s+badge|wheelchair)\b`),
			regexp.MustCompile(`\b(?:long[\s-]?term|overnight|all\s+day)\b`),
		},
	},
	{
		intent: models.IntentGreeting,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:hello|hi|hey|hiya)\b`),
			regexp.MustCompile(`\bgood\s+(?:morning|afternoon|evening)\b`),
			regexp.MustCompile(`\b(?:thanks|thank\s+you|cheers)\b`),
			regexp.MustCompile(`\bhow\s+are\s+you\b`),
		},
	},
}

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute scores the message against every intent's pattern list and picks
// the argmax. Never errors: an all-zero scoreboard yields the general intent
// at 0.5 confidence.
func (h *Handler) Execute(input *Input) *Output {
	message := strings.ToLower(strings.TrimSpace(input.Message))

	scores := make(map[string]int, len(patternTable))
	best := ""
	bestScore := 0

	for _, row := range patternTable {
		score := 0
		for _, p := range row.patterns {
			score += len(p.FindAllString(message, -1)) * matchWeight
		}
		scores[row.intent] = score
		// Strict > keeps earlier table entries on ties.
		if score > bestScore {
			best = row.intent
			bestScore = score
		}
	}

	if bestScore == 0 {
		return &Output{
			Intent:     models.IntentGeneral,
			Confidence: 0.5,
			Scores:     scores,
		}
	}

	confidence := float64(bestScore) / 100.0
	if confidence > 1.0 {
		confidence = 1.0
	}

	h.logger.Debug("intent classified", map[string]interface{}{
		"intent":     best,
		"confidence": confidence,
	})

	return &Output{
		Intent:     best,
		Confidence: confidence,
		Scores:     scores,
	}
}
