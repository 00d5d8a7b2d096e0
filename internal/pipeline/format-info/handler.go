// Package formatinfo attaches a UK-flavoured detail record to every listing.
// Synthetic listings arrive with details already generated; real listings
// are classified by title keywords onto a registry template and filled in
// with template-bounded pricing. Each detail is checked against the
// registry's JSON schema before it ships.
package formatinfo

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"parkassist/internal/common/logger"
	"parkassist/internal/common/random"
	"parkassist/internal/models"
	"parkassist/pkg/registry"
)

const TaskType = "format-info"

var (
	evTitlePattern         = regexp.MustCompile(`\bev\b|charging|electric`)
	accessibleTitlePattern = regexp.MustCompile(`accessible|disabled|blue\s+badge`)
)

var ukPaymentMethods = []string{"RingGo app", "contactless", "chip & PIN", "coins"}

var availabilityLevels = []string{"high", "moderate", "limited"}

type Handler struct {
	registry *registry.TemplateRegistry
	schema   *gojsonschema.Schema
	rng      random.Source
	logger   logger.Logger
}

func NewHandler(reg *registry.TemplateRegistry, rng random.Source, log logger.Logger) (*Handler, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(reg.DetailSchema))
	if err != nil {
		return nil, err
	}
	return &Handler{
		registry: reg,
		schema:   schema,
		rng:      rng,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}, nil
}

// Execute fills in missing details and validates every detail record. A
// validation failure is logged and the detail attached anyway: an imperfect
// record beats an empty card in the chat UI.
func (h *Handler) Execute(input *Input) *Output {
	out := make([]models.ScoredListing, len(input.Listings))
	copy(out, input.Listings)

	for i := range out {
		if out[i].Detail == nil {
			out[i].Detail = h.buildDetail(out[i].Title)
		}
		h.validate(out[i].Title, out[i].Detail)
	}

	return &Output{Listings: out}
}

// buildDetail classifies the title onto a template and derives a detail
// record from it.
func (h *Handler) buildDetail(title string) *models.ListingDetail {
	tmpl := h.classify(title)
	t := strings.ToLower(title)

	hourly := roundRate(tmpl.HourlyRateMin + h.rng.Float64()*(tmpl.HourlyRateMax-tmpl.HourlyRateMin))

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
		Payment:      ukPaymentMethods,
		Availability: h.rng.Pick(availabilityLevels),
		Covered:      tmpl.Covered,
	}

	if evTitlePattern.MatchString(t) {
		detail.EVCharging = true
		detail.EVChargers = []string{"Type 2 (7kW)", "CCS rapid (50kW)"}
	}
	if accessibleTitlePattern.MatchString(t) {
		detail.Accessible = true
		detail.BlueBadge = "Blue Badge bays near entrances"
	}
	if strings.Contains(t, "free") {
		detail.Free = true
		detail.HourlyRate = 0
		detail.DailyRate = 0
	}

	return detail
}

// classify maps a listing title onto a registry template by keyword. The
// first template whose keyword appears wins; unmatched titles fall back to
// on-street, since unnamed facilities are usually kerbside bays.
func (h *Handler) classify(title string) *registry.ParkingTemplate {
	t := strings.ToLower(title)
	for i := range h.registry.Templates {
		for _, kw := range h.registry.Templates[i].Keywords {
			if strings.Contains(t, kw) {
				return &h.registry.Templates[i]
			}
		}
	}
	if tmpl, ok := h.registry.Find(registry.TypeOnStreet); ok {
		return tmpl
	}
	return &h.registry.Templates[0]
}

func (h *Handler) validate(title string, detail *models.ListingDetail) {
	raw, err := json.Marshal(detail)
	if err != nil {
		h.logger.Warn("detail marshal failed", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
		return
	}

	result, err := h.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		h.logger.Warn("detail validation errored", map[string]interface{}{
			"title": title,
			"error": err.Error(),
		})
		return
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			issues = append(issues, e.String())
		}
		h.logger.Warn("detail failed schema validation", map[string]interface{}{
			"title":  title,
			"issues": strings.Join(issues, "; "),
		})
	}
}

func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
