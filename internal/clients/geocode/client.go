package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"parkassist/internal/common/config"
	apperrors "parkassist/internal/common/errors"
	"parkassist/internal/common/httpclient"
	"parkassist/internal/common/logger"
	"parkassist/internal/common/metrics"
)

const endpoint = "geocode"

var ukPattern = regexp.MustCompile(`(?i)\b(?:uk|united\s+kingdom)\b`)

// Client resolves free-text locations against the provider's forward
// geocoding endpoint with a GBR country bias.
type Client struct {
	baseURL string
	apiKey  string
	limit   int
	http    *httpclient.Client
	logger  logger.Logger
}

func NewClient(cfg config.ProviderConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GeocodeBaseURL,
		apiKey:  cfg.APIKey,
		limit:   cfg.GeocodeLimit,
		http:    httpclient.NewClient(config.GetDuration(cfg.GeocodeTimeout)),
		logger:  log.WithFields(map[string]interface{}{"client": endpoint}),
	}
}

// Lookup geocodes the location and returns the first result. Failures come
// back as typed outcomes (timeout / transport / empty / decode); they are
// the orchestrator's fallback trigger, never surfaced to callers.
func (c *Client) Lookup(ctx context.Context, location string) (*Result, error) {
	query := location
	if !ukPattern.MatchString(query) {
		query += " UK"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("in", "countryCode:GBR")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("apiKey", c.apiKey)

	reqURL := c.baseURL + "/v1/geocode?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewGeocodeFailedError(err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || isTimeout(err) {
			metrics.ProviderCalls.WithLabelValues(endpoint, "timeout").Inc()
			return nil, apperrors.NewGeocodeTimeoutError()
		}
		metrics.ProviderCalls.WithLabelValues(endpoint, "transport_error").Inc()
		return nil, apperrors.NewGeocodeFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderCalls.WithLabelValues(endpoint, "http_error").Inc()
		return nil, apperrors.NewGeocodeFailedError(fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		metrics.ProviderCalls.WithLabelValues(endpoint, "decode_error").Inc()
		return nil, apperrors.NewProviderDecodeError(endpoint, err)
	}

	if len(payload.Items) == 0 {
		metrics.ProviderCalls.WithLabelValues(endpoint, "empty").Inc()
		return nil, apperrors.NewGeocodeEmptyError(query)
	}

	metrics.ProviderCalls.WithLabelValues(endpoint, "ok").Inc()

	first := payload.Items[0]
	label := first.Address.Label
	if label == "" {
		label = first.Title
	}

	c.logger.Debug("geocoded location", map[string]interface{}{
		"query":    query,
		"label":    label,
		"duration": time.Since(start).String(),
	})

	return &Result{
		Lat:   first.Position.Lat,
		Lng:   first.Position.Lng,
		Label: label,
	}, nil
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
