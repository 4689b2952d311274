package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nhle/munchie/internal/model"
)

// recordingPlayer is a Player that counts calls.
type recordingPlayer struct {
	mu      sync.Mutex
	playing bool
	plays   int
	rewinds int
	err     error
}

func (p *recordingPlayer) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.playing
}

func (p *recordingPlayer) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plays++
	p.playing = true
	return p.err
}

func (p *recordingPlayer) Rewind() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rewinds++
	return p.err
}

func (p *recordingPlayer) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *recordingPlayer) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plays + p.rewinds
}

// recordedPut is one acknowledgement received by the fake backend.
type recordedPut struct {
	Path string
	Auth string
	Body model.Notification
	At   time.Duration
}

// fakeBackend serves the notification endpoints and stamps each PUT with
// the manual scheduler's clock.
type fakeBackend struct {
	t     *testing.T
	sched *ManualScheduler

	mu      sync.Mutex
	byUser  map[int][]model.Notification
	puts    []recordedPut
	failGet bool
}

func newFakeBackend(t *testing.T, sched *ManualScheduler) (*fakeBackend, *httptest.Server) {
	b := &fakeBackend{t: t, sched: sched, byUser: make(map[int][]model.Notification)}
	ts := httptest.NewServer(b)
	t.Cleanup(ts.Close)
	return b, ts
}

func (b *fakeBackend) set(userID int, ns ...model.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.byUser[userID] = ns
}

func (b *fakeBackend) failLoads() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failGet = true
}

func (b *fakeBackend) recorded() []recordedPut {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recordedPut, len(b.puts))
	copy(out, b.puts)
	return out
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if b.failGet {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		var userID int
		for id := range b.byUser {
			if r.URL.Path == "/api/notifications/user/"+strconv.Itoa(id) {
				userID = id
			}
		}
		ns := b.byUser[userID]
		if ns == nil {
			ns = []model.Notification{}
		}
		json.NewEncoder(w).Encode(ns)

	case http.MethodPut:
		var n model.Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		put := recordedPut{Path: r.URL.Path, Auth: r.Header.Get("Authorization"), Body: n}
		if b.sched != nil {
			put.At = b.sched.Now()
		}
		b.puts = append(b.puts, put)
		if strings.HasSuffix(r.URL.Path, "/500") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(n)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func notifications(ids ...int) []model.Notification {
	out := make([]model.Notification, 0, len(ids))
	for i, id := range ids {
		out = append(out, model.Notification{ID: id, UserID: 7, AwardID: i + 1})
	}
	return out
}

func batchOf(id string, ns ...model.Notification) model.Batch {
	return model.Batch{ID: id, UserID: 7, Notifications: ns, FetchedAt: time.Now()}
}
