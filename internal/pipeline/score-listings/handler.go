package scorelistings

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"parkassist/internal/common/logger"
	"parkassist/internal/common/random"
	"parkassist/internal/models"
)

const TaskType = "score-listings"

// "ev" must stand alone; a bare substring match would fire on "seven" or
// "level".
var evTitlePattern = regexp.MustCompile(`\bev\b|charging`)

// timeWindows maps a time phrase to the server-clock hour range that earns
// the time-of-day bonus. The comparison is against the server's local clock,
// not the user's: a Sydney user asking about "morning" at their 9am gets no
// bonus if the server sits in UTC night. Accepted as-is until client
// timezones arrive on the request.
var timeWindows = map[string][2]int{
	"morning":   {6, 12},
	"noon":      {11, 14},
	"afternoon": {12, 17},
	"evening":   {17, 22},
	"tonight":   {17, 22},
}

type Handler struct {
	config ScoringConfig
	rng    random.Source
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(cfg ScoringConfig, rng random.Source, log logger.Logger) *Handler {
	return &Handler{
		config: cfg,
		rng:    rng,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// WithClock overrides the server clock. Tests pin the time-of-day bonus
// with it.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

// Execute scores every listing and returns them sorted best-first. Equal
// scores keep their input order.
func (h *Handler) Execute(input *Input) *Output {
	scored := make([]models.ScoredListing, 0, len(input.Listings))
	for _, l := range input.Listings {
		scored = append(scored, models.ScoredListing{
			Listing: l,
			Score:   h.score(l, input.Preferences, input.TimePhrase),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	h.logger.Debug("listings scored", map[string]interface{}{
		"count": len(scored),
	})

	return &Output{Scored: scored}
}

func (h *Handler) score(l models.Listing, prefs models.Preferences, timePhrase string) int {
	score := h.config.BaseScore

	score += distanceBonus(l.Distance)
	score += h.timeBonus(timePhrase)
	score += detailBonus(l.Detail, prefs)
	score += titleBonus(l.Title, prefs)
	score += h.rng.Jitter(h.config.JitterSpread)

	if score < h.config.MinScore {
		score = h.config.MinScore
	}
	if score > h.config.MaxScore {
		score = h.config.MaxScore
	}
	return score
}

func distanceBonus(meters int) int {
	switch {
	case meters < 100:
		return 25
	case meters < 200:
		return 20
	case meters < 400:
		return 15
	default:
		return 0
	}
}

// timeBonus rewards listings when the requested period matches the server's
// current hour. Phrases without a window ("now", clock times) earn nothing.
func (h *Handler) timeBonus(timePhrase string) int {
	window, ok := timeWindows[timePhrase]
	if !ok {
		return 0
	}
	hour := h.now().Hour()
	if hour >= window[0] && hour < window[1] {
		return 10
	}
	return 0
}

// detailBonus rewards synthetic listings whose generated amenities satisfy a
// requested preference. Real listings carry no detail at scoring time, so
// they rely on titleBonus instead.
func detailBonus(d *models.ListingDetail, prefs models.Preferences) int {
	if d == nil {
		return 0
	}
	bonus := 0
	if prefs.Free && d.Free {
		bonus += 20
	}
	if prefs.Covered && d.Covered {
		bonus += 15
	}
	if prefs.EVCharging && d.EVCharging {
		bonus += 20
	}
	if prefs.Accessible && d.Accessible {
		bonus += 15
	}
	return bonus
}

// titleBonus rewards amenity hints in the facility name. Garage/covered and
// "free" apply unconditionally; only the EV bonus scales with the request.
func titleBonus(title string, prefs models.Preferences) int {
	t := strings.ToLower(title)
	bonus := 0

	if strings.Contains(t, "garage") || strings.Contains(t, "covered") || strings.Contains(t, "multi-storey") {
		bonus += 10
	}
	if strings.Contains(t, "free") {
		bonus += 15
	}
	if evTitlePattern.MatchString(t) {
		if prefs.EVCharging {
			bonus += 10
		} else {
			bonus += 5
		}
	}
	return bonus
}
