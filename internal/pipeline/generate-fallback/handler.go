// Package generatefallback produces plausible synthetic UK parking listings
// when the provider cannot. The output masks geocoding and discovery
// failures so the conversation never dead-ends; every listing is flagged
// IsMock so callers can tell.
package generatefallback

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"parkassist/internal/common/logger"
	"parkassist/internal/common/metrics"
	"parkassist/internal/common/random"
	"parkassist/internal/models"
	"parkassist/pkg/registry"
)

const TaskType = "generate-fallback"

// Central London anchor for synthetic coordinates.
const (
	anchorLat = 51.5074
	anchorLng = -0.1278
)

var (
	nameSuffixes = []string{
		"Car Park", "Multi-Storey Car Park", "NCP Car Park",
		"Street Parking", "Retail Park Parking", "Station Car Park",
	}

	availabilityLevels = []string{"high", "moderate", "limited"}
)

type Handler struct {
	registry *registry.TemplateRegistry
	rng      random.Source
	titler   cases.Caser
	logger   logger.Logger
}

func NewHandler(reg *registry.TemplateRegistry, rng random.Source, log logger.Logger) *Handler {
	return &Handler{
		registry: reg,
		rng:      rng,
		titler:   cases.Title(language.BritishEnglish),
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute generates between five and eight listings named after the
// requested location, each with a full detail record drawn from a registry
// template.
func (h *Handler) Execute(input *Input) *Output {
	count := h.rng.Range(5, 8)
	base := h.baseName(input.Location)

	listings := make([]models.Listing, 0, count)
	for i := 0; i < count; i++ {
		listings = append(listings, h.generate(base, input.Preferences))
	}

	metrics.FallbackGenerations.Inc()
	h.logger.Info("generated synthetic listings", map[string]interface{}{
		"location": input.Location,
		"count":    count,
	})

	return &Output{Listings: listings}
}

// baseName turns the raw location slot into a street-ish display name.
// "oxford street for tonight" style tails were already stripped upstream.
func (h *Handler) baseName(location string) string {
	loc := strings.TrimSpace(location)
	if loc == "" {
		loc = "city centre"
	}
	return h.titler.String(loc)
}

func (h *Handler) generate(base string, prefs models.Preferences) models.Listing {
	tmpl := &h.registry.Templates[h.rng.Intn(len(h.registry.Templates))]

	title := fmt.Sprintf("%s %s", base, h.rng.Pick(nameSuffixes))
	distance := h.rng.Range(50, 800)

	free := prefs.Free && h.rng.Coin()
	hourly := 0.0
	if !free {
		hourly = roundRate(tmpl.HourlyRateMin + h.rng.Float64()*(tmpl.HourlyRateMax-tmpl.HourlyRateMin))
	}

	detail := &models.ListingDetail{
		ParkingType:  tmpl.ID,
		HourlyRate:   hourly,
		DailyRate:    roundRate(hourly * tmpl.DailyRateHours),
		MaxDuration:  tmpl.MaxDuration,
		FreePeriods:  tmpl.FreePeriods,
		Rules:        tmpl.Rules,
		Hours:        tmpl.Hours,
		Pros:         tmpl.Pros,
		Cons:         tmpl.Cons,
		Payment:      []string{"RingGo app", "contactless", "chip & PIN", "coins"},
		Availability: h.rng.Pick(availabilityLevels),
		Accessible:   prefs.Accessible || h.rng.Coin(),
		EVCharging:   prefs.EVCharging && h.rng.Coin(),
		Free:         free,
		Covered:      tmpl.Covered,
	}
	if detail.EVCharging {
		detail.EVChargers = []string{"Type 2 (7kW)", "CCS rapid (50kW)"}
	}
	if detail.Accessible {
		detail.BlueBadge = "Blue Badge bays near entrances"
	}

	// Synthetic sites all sit on the dummy anchor; the distance field, not
	// the coordinates, is what downstream consumes.
	return models.Listing{
		Title:    title,
		Distance: distance,
		Address:  fmt.Sprintf("%s, London, UK", title),
		Position: models.Position{
			Lat: anchorLat,
			Lng: anchorLng,
		},
		IsMock: true,
		Detail: detail,
	}
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
