// Package orchestrator runs a chat message through the full pipeline:
// classify, extract slots, geocode, discover, score, format. Provider
// failures never reach the user; they degrade to synthetic listings and a
// partial status.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"parkassist/internal/clients/geocode"
	apperrors "parkassist/internal/common/errors"
	"parkassist/internal/common/logger"
	"parkassist/internal/common/metrics"
	"parkassist/internal/common/observability"
	"parkassist/internal/common/random"
	"parkassist/internal/models"
	classifyintent "parkassist/internal/pipeline/classify-intent"
	extractslots "parkassist/internal/pipeline/extract-slots"
	formatinfo "parkassist/internal/pipeline/format-info"
	generatefallback "parkassist/internal/pipeline/generate-fallback"
	scorelistings "parkassist/internal/pipeline/score-listings"
	"parkassist/internal/session"
)

// Geocoder resolves a free-text location to coordinates.
type Geocoder interface {
	Lookup(ctx context.Context, location string) (*geocode.Result, error)
}

// Searcher finds parking listings around a coordinate.
type Searcher interface {
	Search(ctx context.Context, lat, lng float64) ([]models.Listing, error)
}

type Orchestrator struct {
	classifier *classifyintent.Handler
	extractor  *extractslots.Handler
	scorer     *scorelistings.Handler
	fallback   *generatefallback.Handler
	formatter  *formatinfo.Handler

	geocoder Geocoder
	searcher Searcher
	store    session.Store
	obs      *observability.Observability
	rng      random.Source

	maxResults int
	debug      bool
	logger     logger.Logger
}

type Deps struct {
	Classifier *classifyintent.Handler
	Extractor  *extractslots.Handler
	Scorer     *scorelistings.Handler
	Fallback   *generatefallback.Handler
	Formatter  *formatinfo.Handler
	Geocoder   Geocoder
	Searcher   Searcher
	Store      session.Store
	Obs        *observability.Observability
	Rng        random.Source
	MaxResults int
	Debug      bool
	Logger     logger.Logger
}

func New(d Deps) *Orchestrator {
	maxResults := d.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Orchestrator{
		classifier: d.Classifier,
		extractor:  d.Extractor,
		scorer:     d.Scorer,
		fallback:   d.Fallback,
		formatter:  d.Formatter,
		geocoder:   d.Geocoder,
		searcher:   d.Searcher,
		store:      d.Store,
		obs:        d.Obs,
		rng:        d.Rng,
		maxResults: maxResults,
		debug:      d.Debug,
		logger:     d.Logger.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
}

// HandleMessage processes one chat message end to end. It never returns an
// error: every failure path produces a usable reply, and a panic anywhere in
// the pipeline is caught at this boundary and turned into an error-status
// response.
func (o *Orchestrator) HandleMessage(ctx context.Context, req *models.ChatRequest) (resp *models.ChatResponse) {
	start := time.Now()
	intent := models.IntentGeneral

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("pipeline panic", map[string]interface{}{
				"user_id": req.UserID,
				"panic":   r,
			})
			resp = errorResponse(req.Message, fmt.Sprint(r), o.debug)
		}
		metrics.ChatRequests.WithLabelValues(resp.Status).Inc()
		metrics.ChatRequestDuration.WithLabelValues(intent).Observe(time.Since(start).Seconds())
		o.obs.RecordMessageProcessed(ctx, resp.Status)
		o.obs.RecordMessageDuration(ctx, time.Since(start), resp.Status)
	}()

	cc := session.GetOrNew(ctx, o.store, req.UserID)

	spanCtx, end := o.obs.StartSpan(ctx, "classify-intent")
	classified := o.classifier.Execute(&classifyintent.Input{Message: req.Message})
	end()
	intent = classified.Intent

	if classified.Intent == models.IntentGreeting {
		o.persist(ctx, cc)
		return o.greetingResponse(req.Message)
	}

	_, end = o.obs.StartSpan(spanCtx, "extract-slots")
	slots := o.extractor.Execute(&extractslots.Input{Message: req.Message, Context: cc})
	end()

	if !slots.HasLocation() {
		o.persist(ctx, cc)
		return o.promptForLocation(req.Message)
	}

	listings, locationLabel, isMock := o.findListings(spanCtx, slots)

	_, end = o.obs.StartSpan(spanCtx, "score-listings")
	scored := o.scorer.Execute(&scorelistings.Input{
		Listings:    listings,
		Preferences: slots.Preferences,
		TimePhrase:  slots.TimePhrase,
	})
	end()

	_, end = o.obs.StartSpan(spanCtx, "format-info")
	formatted := o.formatter.Execute(&formatinfo.Input{Listings: scored.Scored})
	end()

	results := formatted.Listings
	if len(results) > o.maxResults {
		results = results[:o.maxResults]
	}

	cc.LastResultCount = len(results)
	o.persist(ctx, cc)

	return o.resultsResponse(req.Message, locationLabel, results, isMock)
}

// findListings geocodes the location slot and searches around it. Any typed
// provider outcome switches to the synthetic generator; the caller only sees
// listings and whether they are mock.
func (o *Orchestrator) findListings(ctx context.Context, slots *extractslots.Output) ([]models.Listing, string, bool) {
	spanCtx, end := o.obs.StartSpan(ctx, "geocode")
	loc, err := o.geocoder.Lookup(spanCtx, slots.Location)
	end()
	if err != nil {
		o.logger.Warn("geocode failed, generating synthetic listings", map[string]interface{}{
			"location": slots.Location,
			"timeout":  apperrors.IsTimeout(err),
			"empty":    apperrors.IsEmpty(err),
			"error":    err.Error(),
		})
		return o.generate(spanCtx, slots), slots.Location, true
	}

	searchCtx, end := o.obs.StartSpan(spanCtx, "discover")
	listings, err := o.searcher.Search(searchCtx, loc.Lat, loc.Lng)
	end()
	if err != nil {
		o.logger.Warn("discovery failed, generating synthetic listings", map[string]interface{}{
			"location": loc.Label,
			"empty":    apperrors.IsEmpty(err),
			"error":    err.Error(),
		})
		return o.generate(spanCtx, slots), loc.Label, true
	}

	return listings, loc.Label, false
}

func (o *Orchestrator) generate(ctx context.Context, slots *extractslots.Output) []models.Listing {
	_, end := o.obs.StartSpan(ctx, "generate-fallback")
	defer end()
	out := o.fallback.Execute(&generatefallback.Input{
		Location:    slots.Location,
		Preferences: slots.Preferences,
	})
	return out.Listings
}

// persist writes the context back. Store failures are logged and swallowed:
// losing a turn of context is better than failing the message.
func (o *Orchestrator) persist(ctx context.Context, cc *models.ConversationContext) {
	cc.UpdatedAt = time.Now().UTC()
	if err := o.store.Put(ctx, cc.UserID, cc); err != nil {
		serr := apperrors.NewSessionStoreError("put", err)
		o.logger.WithError(serr).Warn("context persist failed", map[string]interface{}{
			"user_id": cc.UserID,
		})
	}
}
