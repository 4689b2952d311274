package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("http://localhost:8080/")

	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, 3, c.maxRetries)
	assert.Nil(t, c.limiter)
}

func TestNewClientOptions(t *testing.T) {
	c := NewClient("http://x", WithTimeout(5*time.Second), WithMaxRetries(0), WithRateLimit(2))

	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 0, c.maxRetries)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 2, c.limiter.Burst())
}

func TestDoRetriesOnTooManyRequests(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "title": "Soup"}})
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	recipes, err := c.ListRecipes(context.Background())
	require.NoError(t, err)

	assert.Len(t, recipes, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, WithMaxRetries(2))
	_, err := c.ListUsers(context.Background())

	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestDoUnauthorizedIsAuthAndFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.GetUserByUsername(context.Background(), "stale", "chef")

	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.True(t, IsFetchError(err))
}

func TestDoTransportFailureIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewClient(url)
	_, err := c.ListAwards(context.Background())

	require.Error(t, err)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 0, fetchErr.StatusCode)
}

func TestSearchRecipesEscapesKeyword(t *testing.T) {
	var gotKeyword string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/recipes/search", r.URL.Path)
		gotKeyword = r.URL.Query().Get("keyword")
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	recipes, err := c.SearchRecipes(context.Background(), "mac & cheese")
	require.NoError(t, err)

	assert.Empty(t, recipes)
	assert.Equal(t, "mac & cheese", gotKeyword)
}
