package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
)

// notificationBackend is a minimal in-memory notifications resource.
type notificationBackend struct {
	mu    sync.Mutex
	items map[int]model.Notification
	order []int
	puts  int32
	auth  []string
}

func newNotificationBackend(ns ...model.Notification) *notificationBackend {
	b := &notificationBackend{items: make(map[int]model.Notification)}
	for _, n := range ns {
		b.items[n.ID] = n
		b.order = append(b.order, n.ID)
	}
	return b
}

func (b *notificationBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/notifications/user/"):
		var userID int
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/api/notifications/user/"), "%d", &userID)
		out := []model.Notification{}
		for _, id := range b.order {
			if n := b.items[id]; n.UserID == userID {
				out = append(out, n)
			}
		}
		json.NewEncoder(w).Encode(out)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/notifications/"):
		atomic.AddInt32(&b.puts, 1)
		b.auth = append(b.auth, r.Header.Get("Authorization"))
		var n model.Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.items[n.ID] = n
		json.NewEncoder(w).Encode(n)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestListNotificationsPreservesServerOrder(t *testing.T) {
	backend := newNotificationBackend(
		model.Notification{ID: 9, UserID: 7, AwardID: 3},
		model.Notification{ID: 2, UserID: 7, AwardID: 1},
		model.Notification{ID: 5, UserID: 8, AwardID: 4},
		model.Notification{ID: 4, UserID: 7, AwardID: 16},
	)
	ts := httptest.NewServer(backend)
	defer ts.Close()

	c := NewClient(ts.URL)
	got, err := c.ListNotifications(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []int{9, 2, 4}, []int{got[0].ID, got[1].ID, got[2].ID})
}

func TestListNotificationsEmptyIsNotNil(t *testing.T) {
	ts := httptest.NewServer(newNotificationBackend())
	defer ts.Close()

	got, err := NewClient(ts.URL).ListNotifications(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListNotificationsRejectsNonPositiveUser(t *testing.T) {
	c := NewClient("http://unused.invalid")

	_, err := c.ListNotifications(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestListNotificationsNeverRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL, WithMaxRetries(5)).ListNotifications(context.Background(), 7)

	require.Error(t, err)
	assert.True(t, IsFetchError(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestListNotificationsServerErrorIsFetchError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := NewClient(ts.URL).ListNotifications(context.Background(), 7)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestMarkNotificationShownSendsFullResource(t *testing.T) {
	var body map[string]any
	var authHeader string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/notifications/1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(body)
	}))
	defer ts.Close()

	n := model.Notification{ID: 1, UserID: 7, AwardID: 2}
	updated, err := NewClient(ts.URL).MarkNotificationShown(context.Background(), "tok", n)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", authHeader)
	assert.Equal(t, true, body["notificationShown"])
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, float64(2), body["awardId"])
	assert.True(t, updated.NotificationShown)
}

func TestMarkNotificationShownWithoutTokenSendsNothing(t *testing.T) {
	backend := newNotificationBackend(model.Notification{ID: 1, UserID: 7, AwardID: 2})
	ts := httptest.NewServer(backend)
	defer ts.Close()

	_, err := NewClient(ts.URL).MarkNotificationShown(context.Background(), "", model.Notification{ID: 1})

	assert.ErrorIs(t, err, ErrAuthMissing)
	assert.Equal(t, int32(0), atomic.LoadInt32(&backend.puts))
}

func TestMarkNotificationShownIsIdempotent(t *testing.T) {
	original := model.Notification{ID: 3, UserID: 7, AwardID: 5}
	backend := newNotificationBackend(original)
	ts := httptest.NewServer(backend)
	defer ts.Close()
	c := NewClient(ts.URL)

	first, err := c.MarkNotificationShown(context.Background(), "tok", original)
	require.NoError(t, err)
	afterFirst := backend.items[3]

	second, err := c.MarkNotificationShown(context.Background(), "tok", *first)
	require.NoError(t, err)

	assert.Equal(t, afterFirst, backend.items[3])
	assert.Equal(t, *first, *second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&backend.puts))
}

func TestListNotificationsAcceptsZonelessCreatedAt(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"userId":7,"awardId":2,"notificationShown":false,"createdAt":"2024-05-01T12:00:00"},` +
			`{"id":2,"userId":7,"awardId":3,"notificationShown":false,"createdAt":"2024-05-01T12:00:00Z"}]`))
	}))
	defer ts.Close()

	got, err := NewClient(ts.URL).ListNotifications(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, got, 2)
	require.NotNil(t, got[0].CreatedAt)
	assert.True(t, got[0].CreatedAt.Equal(got[1].CreatedAt.Time))
}

func TestMarkNotificationShownKeepsUnmodelledFields(t *testing.T) {
	var put map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[{"id":1,"userId":7,"awardId":2,"notificationShown":false,` +
				`"createdAt":"2024-05-01T12:00:00","message":"hi","user":{"id":7}}]`))
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
		json.NewEncoder(w).Encode(put)
	}))
	defer ts.Close()
	c := NewClient(ts.URL)

	ns, err := c.ListNotifications(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, ns, 1)

	_, err = c.MarkNotificationShown(context.Background(), "tok", ns[0])
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":                float64(1),
		"userId":            float64(7),
		"awardId":           float64(2),
		"notificationShown": true,
		"createdAt":         "2024-05-01T12:00:00",
		"message":           "hi",
		"user":              map[string]any{"id": float64(7)},
	}, put)
}
