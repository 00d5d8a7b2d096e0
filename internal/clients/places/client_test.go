package places

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkassist/internal/common/config"
	apperrors "parkassist/internal/common/errors"
	"parkassist/internal/common/logger"
)

// ==========================
// Test Helpers
// ==========================

var testCategories = []string{"parking", "car park", "parking garage"}

func newTestClient(t *testing.T, baseURL string, categories []string) *Client {
	cfg := config.ProviderConfig{
		APIKey:          "test-key",
		DiscoverBaseURL: baseURL,
		DiscoverTimeout: 2000,
		DiscoverLimit:   10,
	}
	return NewClient(cfg, categories, logger.NewTestLogger(t))
}

func itemJSON(title string, distance int, lat, lng float64) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"distance": distance,
		"address":  map[string]interface{}{"label": title + ", London"},
		"position": map[string]interface{}{"lat": lat, "lng": lng},
		"categories": []map[string]interface{}{
			{"name": "Parking"},
		},
	}
}

func writeItems(w http.ResponseWriter, items ...map[string]interface{}) {
	if items == nil {
		items = []map[string]interface{}{}
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"items": items})
}

// ==========================
// Tests
// ==========================

func TestClient_Search_MergesCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/discover", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "test-key", q.Get("apiKey"))
		require.Equal(t, "10", q.Get("limit"))
		require.NotEmpty(t, q.Get("at"))

		switch q.Get("q") {
		case "parking":
			writeItems(w, itemJSON("NCP Soho", 120, 51.5136, -0.1365))
		case "car park":
			writeItems(w, itemJSON("Q-Park Oxford Street", 250, 51.5150, -0.1420))
		default:
			writeItems(w)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testCategories)
	listings, err := c.Search(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)

	require.Len(t, listings, 2)
	assert.Equal(t, "NCP Soho", listings[0].Title)
	assert.Equal(t, 120, listings[0].Distance)
	assert.Equal(t, "NCP Soho, London", listings[0].Address)
	assert.Equal(t, []string{"Parking"}, listings[0].Categories)
	assert.Equal(t, "Q-Park Oxford Street", listings[1].Title)
}

func TestClient_Search_DeduplicatesAcrossCategories(t *testing.T) {
	// Same facility returned by every category query.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeItems(w,
			itemJSON("NCP Soho", 120, 51.5136, -0.1365),
			itemJSON("NCP Soho", 120, 53.4808, -2.2426), // same name, different site
		)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testCategories)
	listings, err := c.Search(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)

	// Duplicate (title, lat) pairs collapse; the same title at a different
	// latitude survives.
	assert.Len(t, listings, 2)
}

func TestClient_Search_ToleratesCategoryFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeItems(w, itemJSON("Trafford Centre Car Park", 300, 53.4668, -2.3490))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testCategories)
	listings, err := c.Search(context.Background(), 53.4808, -2.2426)

	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.EqualValues(t, 3, calls.Load(), "remaining categories still queried")
}

func TestClient_Search_AllEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeItems(w)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testCategories)
	_, err := c.Search(context.Background(), 51.5074, -0.1278)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderEmpty))
	assert.True(t, apperrors.IsRecoverable(err))
}

func TestClient_Search_AllFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, testCategories)
	_, err := c.Search(context.Background(), 51.5074, -0.1278)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrProviderEmpty))
}

func TestClient_Search_QueriesEveryCategory(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Query().Get("q"))
		writeItems(w, itemJSON("Generic Car Park", 100, 51.50, -0.12))
	}))
	defer srv.Close()

	categories := []string{"parking", "car park", "parking garage", "multi-storey car park", "park and ride"}
	c := newTestClient(t, srv.URL, categories)

	_, err := c.Search(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	assert.Equal(t, categories, got)
}
