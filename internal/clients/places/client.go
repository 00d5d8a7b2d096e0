// Package places queries the provider's discovery endpoint for parking
// facilities around a coordinate. One search fans out over several category
// phrases because the provider tags car parks inconsistently; results are
// merged and deduplicated before ranking.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"parkassist/internal/common/config"
	apperrors "parkassist/internal/common/errors"
	"parkassist/internal/common/httpclient"
	"parkassist/internal/common/logger"
	"parkassist/internal/common/metrics"
	"parkassist/internal/models"
)

const endpoint = "discover"

type Client struct {
	baseURL    string
	apiKey     string
	limit      int
	categories []string
	http       *httpclient.Client
	logger     logger.Logger
}

func NewClient(cfg config.ProviderConfig, categories []string, log logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.DiscoverBaseURL,
		apiKey:     cfg.APIKey,
		limit:      cfg.DiscoverLimit,
		categories: categories,
		http:       httpclient.NewClient(config.GetDuration(cfg.DiscoverTimeout)),
		logger:     log.WithFields(map[string]interface{}{"client": endpoint}),
	}
}

// Search runs one discovery query per configured category and merges the
// results. A failed category is logged and skipped; the search only errors
// when every category came back empty or failed, so a single provider hiccup
// cannot sink an otherwise good result set.
func (c *Client) Search(ctx context.Context, lat, lng float64) ([]models.Listing, error) {
	seen := make(map[string]bool)
	var listings []models.Listing

	for _, category := range c.categories {
		items, err := c.discover(ctx, lat, lng, category)
		if err != nil {
			c.logger.Warn("category query failed", map[string]interface{}{
				"category": category,
				"error":    err.Error(),
			})
			continue
		}

		for _, item := range items {
			key := dedupeKey(item.Title, item.Position.Lat)
			if seen[key] {
				continue
			}
			seen[key] = true
			listings = append(listings, toListing(item))
		}
	}

	if len(listings) == 0 {
		metrics.ProviderCalls.WithLabelValues(endpoint, "empty").Inc()
		return nil, apperrors.NewDiscoverEmptyError()
	}

	c.logger.Info("discovery complete", map[string]interface{}{
		"listings":   len(listings),
		"categories": len(c.categories),
	})

	return listings, nil
}

func (c *Client) discover(ctx context.Context, lat, lng float64, category string) ([]apiItem, error) {
	params := url.Values{}
	params.Set("at", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("q", category)
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("apiKey", c.apiKey)

	reqURL := c.baseURL + "/v1/discover?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewDiscoverFailedError(category, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			metrics.ProviderCalls.WithLabelValues(endpoint, "timeout").Inc()
			return nil, apperrors.NewDiscoverTimeoutError(category)
		}
		metrics.ProviderCalls.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, apperrors.NewDiscoverFailedError(category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderCalls.WithLabelValues(endpoint, "http_error").Inc()
		return nil, apperrors.NewDiscoverFailedError(category, fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ProviderCalls.WithLabelValues(endpoint, "decode_error").Inc()
		return nil, apperrors.NewProviderDecodeError(endpoint, err)
	}

	metrics.ProviderCalls.WithLabelValues(endpoint, "ok").Inc()

	c.logger.Debug("category query done", map[string]interface{}{
		"category": category,
		"items":    len(payload.Items),
		"duration": time.Since(start).String(),
	})

	return payload.Items, nil
}

// dedupeKey identifies a facility across category queries. Title alone is
// not enough (chains repeat names across sites), so latitude disambiguates.
func dedupeKey(title string, lat float64) string {
	return fmt.Sprintf("%s|%.6f", title, lat)
}

func toListing(item apiItem) models.Listing {
	l := models.Listing{
		Title:    item.Title,
		Distance: item.Distance,
		Address:  item.Address.Label,
		Position: models.Position{
			Lat: item.Position.Lat,
			Lng: item.Position.Lng,
		},
	}
	for _, c := range item.Categories {
		l.Categories = append(l.Categories, c.Name)
	}
	return l
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	if te, ok := err.(timeouter); ok {
		return te.Timeout()
	}
	if ue, ok := err.(*url.Error); ok {
		return ue.Timeout()
	}
	return false
}
