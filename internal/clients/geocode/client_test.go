package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkassist/internal/common/config"
	apperrors "parkassist/internal/common/errors"
	"parkassist/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

func newTestClient(t *testing.T, baseURL string) *Client {
	cfg := config.ProviderConfig{
		APIKey:         "test-key",
		GeocodeBaseURL: baseURL,
		GeocodeTimeout: 2000,
		GeocodeLimit:   3,
	}
	return NewClient(cfg, logger.NewTestLogger(t))
}

const oxfordStreetBody = `{
	"items": [
		{
			"title": "Oxford Street",
			"address": {"label": "Oxford Street, London, England"},
			"position": {"lat": 51.51534, "lng": -0.14183}
		},
		{
			"title": "Oxford Street (second)",
			"address": {"label": "Oxford Street, Southampton"},
			"position": {"lat": 50.89735, "lng": -1.39905}
		}
	]
}`

// ==========================
// Tests
// ==========================

func TestClient_Lookup_Success(t *testing.T) {
	var gotQuery, gotIn, gotLimit, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/geocode", r.URL.Path)
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotIn = q.Get("in")
		gotLimit = q.Get("limit")
		gotKey = q.Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oxfordStreetBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Lookup(context.Background(), "oxford street")
	require.NoError(t, err)

	// Bias suffix and country filter are always applied.
	assert.Equal(t, "oxford street UK", gotQuery)
	assert.Equal(t, "countryCode:GBR", gotIn)
	assert.Equal(t, "3", gotLimit)
	assert.Equal(t, "test-key", gotKey)

	// Only the first item is used.
	assert.InDelta(t, 51.51534, res.Lat, 0.0001)
	assert.InDelta(t, -0.14183, res.Lng, 0.0001)
	assert.Equal(t, "Oxford Street, London, England", res.Label)
}

func TestClient_Lookup_NoDoubleUKSuffix(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"manchester uk", "manchester uk"},
		{"Manchester UK", "Manchester UK"},
		{"london united kingdom", "london united kingdom"},
		{"ukulele street", "ukulele street UK"},
		{"york", "york UK"},
	}

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(oxfordStreetBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			_, err := c.Lookup(context.Background(), tt.location)
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotQuery)
		})
	}
}

func TestClient_Lookup_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Lookup(context.Background(), "nowhere at all")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderEmpty))
	assert.True(t, apperrors.IsEmpty(err))
}

func TestClient_Lookup_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Lookup(context.Background(), "leeds")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderTransport))
}

func TestClient_Lookup_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Lookup(context.Background(), "leeds")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderDecode))
}

func TestClient_Lookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(oxfordStreetBody))
	}))
	defer srv.Close()

	cfg := config.ProviderConfig{
		APIKey:         "test-key",
		GeocodeBaseURL: srv.URL,
		GeocodeTimeout: 20,
		GeocodeLimit:   3,
	}
	c := NewClient(cfg, logger.NewTestLogger(t))

	_, err := c.Lookup(context.Background(), "leeds")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderTimeout))
	assert.True(t, apperrors.IsTimeout(err))
}

func TestClient_Lookup_LabelFallsBackToTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"title": "Hull", "position": {"lat": 53.76, "lng": -0.33}}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	res, err := c.Lookup(context.Background(), "hull")
	require.NoError(t, err)
	assert.Equal(t, "Hull", res.Label)
}
