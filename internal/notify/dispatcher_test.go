package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/logging"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/store"
	"github.com/nhle/munchie/internal/testutil"
)

type mockAcknowledger struct {
	mock.Mock
}

func (m *mockAcknowledger) MarkNotificationShown(
	ctx context.Context,
	token string,
	n model.Notification,
) (*model.Notification, error) {
	args := m.Called(token, n.ID)
	updated, _ := args.Get(0).(*model.Notification)
	return updated, args.Error(1)
}

func newTestDispatcher(t *testing.T, ack Acknowledger, opts ...DispatcherOption) (*Dispatcher, *ManualScheduler, *recordingPlayer) {
	t.Helper()

	sched := NewManualScheduler()
	player := &recordingPlayer{}
	opts = append([]DispatcherOption{
		WithScheduler(sched),
		WithDispatcherLogger(logging.Discard()),
	}, opts...)
	d := NewDispatcher(ack, NewCue(player, logging.Discard()), opts...)
	t.Cleanup(d.Close)
	return d, sched, player
}

func TestDispatchSchedulesOneActionPerNotification(t *testing.T) {
	for n := 0; n <= 6; n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			d, sched, _ := newTestDispatcher(t, &mockAcknowledger{})

			ids := make([]int, n)
			for i := range ids {
				ids[i] = i + 1
			}
			delays := d.Dispatch(batchOf("b", notifications(ids...)...), "tok")

			require.Len(t, delays, n)
			for i, delay := range delays {
				assert.Equal(t, DefaultBaseDelay+time.Duration(i)*DefaultStepDelay, delay)
			}
			assert.Equal(t, n, d.Pending())
			assert.Len(t, sched.Pending(), n)
		})
	}
}

func TestDispatchSingleNotification(t *testing.T) {
	sched := NewManualScheduler()
	backend, ts := newFakeBackend(t, sched)
	d, _, player := newTestDispatcher(t, api.NewClient(ts.URL), WithScheduler(sched))

	d.Dispatch(batchOf("b", model.Notification{ID: 1, UserID: 7, AwardID: 2}), "tok")

	sched.Advance(999 * time.Millisecond)
	assert.Empty(t, backend.recorded())
	assert.Zero(t, player.total())

	sched.Advance(time.Millisecond)
	puts := backend.recorded()
	require.Len(t, puts, 1)
	assert.Equal(t, "/api/notifications/1", puts[0].Path)
	assert.Equal(t, "Bearer tok", puts[0].Auth)
	assert.True(t, puts[0].Body.NotificationShown)
	assert.Equal(t, 7, puts[0].Body.UserID)
	assert.Equal(t, 2, puts[0].Body.AwardID)
	assert.Equal(t, time.Second, puts[0].At)
	assert.Equal(t, 1, player.total())
}

func TestDispatchStaggersInListOrder(t *testing.T) {
	sched := NewManualScheduler()
	backend, ts := newFakeBackend(t, sched)
	d, _, player := newTestDispatcher(t, api.NewClient(ts.URL), WithScheduler(sched))

	d.Dispatch(batchOf("b", notifications(1, 2, 3)...), "tok")
	for i := 0; i < 10; i++ {
		sched.Advance(time.Second)
	}

	puts := backend.recorded()
	require.Len(t, puts, 3)
	assert.Equal(t, []string{"/api/notifications/1", "/api/notifications/2", "/api/notifications/3"},
		[]string{puts[0].Path, puts[1].Path, puts[2].Path})
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 9 * time.Second},
		[]time.Duration{puts[0].At, puts[1].At, puts[2].At})
	assert.Equal(t, 3, player.total())
	assert.Zero(t, d.Pending())
}

func TestDispatchWithoutTokenSchedulesNothing(t *testing.T) {
	sched := NewManualScheduler()
	backend, ts := newFakeBackend(t, sched)
	journal := testutil.NewTestStore(t)
	d, _, player := newTestDispatcher(t, api.NewClient(ts.URL), WithScheduler(sched), WithJournal(journal))

	delays := d.Dispatch(batchOf("b", notifications(1, 2, 3)...), "")
	sched.Advance(time.Minute)

	assert.Empty(t, delays)
	assert.Empty(t, backend.recorded())
	assert.Empty(t, sched.Pending())
	assert.Zero(t, player.total())

	counts, err := journal.CountAcks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.AckSkipped])
}

func TestDispatchFailureDoesNotAbortSiblings(t *testing.T) {
	ack := &mockAcknowledger{}
	shown := model.Notification{ID: 2, UserID: 7, AwardID: 2, NotificationShown: true}
	ack.On("MarkNotificationShown", "tok", 1).Return(nil, errors.New("boom")).Once()
	ack.On("MarkNotificationShown", "tok", 2).Return(&shown, nil).Once()

	journal := testutil.NewTestStore(t)
	d, sched, player := newTestDispatcher(t, ack, WithJournal(journal))

	d.Dispatch(batchOf("b", notifications(1, 2)...), "tok")
	sched.Advance(10 * time.Second)

	ack.AssertExpectations(t)
	assert.Equal(t, 2, player.total(), "cue plays after failed and successful attempts")

	failed := model.AckFailed
	recs, err := journal.ListAcks(context.Background(), store.AckFilter{Status: &failed})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 1, recs[0].NotificationID)
	assert.Equal(t, "boom", recs[0].Error)
}

func TestDispatchNewBatchCancelsPrevious(t *testing.T) {
	sched := NewManualScheduler()
	backend, ts := newFakeBackend(t, sched)
	journal := testutil.NewTestStore(t)
	d, _, _ := newTestDispatcher(t, api.NewClient(ts.URL), WithScheduler(sched), WithJournal(journal))

	d.Dispatch(batchOf("first", notifications(1, 2, 3)...), "tok")
	sched.Advance(time.Second)
	require.Len(t, backend.recorded(), 1)

	d.Dispatch(batchOf("second", notifications(10)...), "tok")
	assert.Equal(t, "second", d.CurrentBatch())
	sched.Advance(time.Minute)

	puts := backend.recorded()
	require.Len(t, puts, 2)
	assert.Equal(t, "/api/notifications/10", puts[1].Path)

	first := "first"
	recs, err := journal.ListAcks(context.Background(), store.AckFilter{BatchID: &first})
	require.NoError(t, err)
	statuses := map[model.AckStatus]int{}
	for _, r := range recs {
		statuses[r.Status]++
	}
	assert.Equal(t, 1, statuses[model.AckAcknowledged])
	assert.Equal(t, 2, statuses[model.AckCancelled])
}

// firedScheduler hands out timers that have always already fired, so Stop
// never succeeds and the test decides when each function runs.
type firedScheduler struct {
	fns []func()
}

func (s *firedScheduler) AfterFunc(_ time.Duration, f func()) Timer {
	s.fns = append(s.fns, f)
	return firedTimer{}
}

type firedTimer struct{}

func (firedTimer) Stop() bool { return false }

func TestSupersededActionThatAlreadyFiredIsCancelled(t *testing.T) {
	ack := &mockAcknowledger{}
	sched := &firedScheduler{}
	journal := testutil.NewTestStore(t)
	d, _, player := newTestDispatcher(t, ack, WithScheduler(sched), WithJournal(journal))

	d.Dispatch(batchOf("first", notifications(1)...), "tok")
	d.Dispatch(batchOf("second"), "tok")
	require.Len(t, sched.fns, 1)

	// The first batch's timer was already running when it was superseded.
	sched.fns[0]()

	ack.AssertNotCalled(t, "MarkNotificationShown", mock.Anything, mock.Anything)
	assert.Zero(t, player.total())

	ev, ok := d.WaitForEvent()().(AckEvent)
	require.True(t, ok)
	assert.Equal(t, "first", ev.BatchID)
	assert.Equal(t, model.AckCancelled, ev.Status)
	assert.Equal(t, 1, ev.Notification.ID)

	first := "first"
	recs, err := journal.ListAcks(context.Background(), store.AckFilter{BatchID: &first})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.AckCancelled, recs[0].Status)
}

func TestCancelStopsPendingActions(t *testing.T) {
	ack := &mockAcknowledger{}
	d, sched, player := newTestDispatcher(t, ack)

	d.Dispatch(batchOf("b", notifications(1, 2)...), "tok")
	d.Cancel()
	sched.Advance(time.Minute)

	ack.AssertNotCalled(t, "MarkNotificationShown", mock.Anything, mock.Anything)
	assert.Zero(t, player.total())
	assert.Zero(t, d.Pending())
	assert.Equal(t, "", d.CurrentBatch())
}

func TestCloseRefusesNewBatches(t *testing.T) {
	d, sched, _ := newTestDispatcher(t, &mockAcknowledger{})

	d.Close()
	delays := d.Dispatch(batchOf("b", notifications(1)...), "tok")

	assert.Nil(t, delays)
	assert.Empty(t, sched.Pending())
	assert.Nil(t, d.WaitForEvent()())
}

func TestWaitForEventDeliversOutcome(t *testing.T) {
	ack := &mockAcknowledger{}
	shown := model.Notification{ID: 4, NotificationShown: true}
	ack.On("MarkNotificationShown", "tok", 4).Return(&shown, nil)
	d, sched, _ := newTestDispatcher(t, ack)

	d.Dispatch(batchOf("b", model.Notification{ID: 4}), "tok")
	sched.Advance(time.Second)

	msg := d.WaitForEvent()()
	ev, ok := msg.(AckEvent)
	require.True(t, ok)
	assert.Equal(t, "b", ev.BatchID)
	assert.Equal(t, model.AckAcknowledged, ev.Status)
	assert.True(t, ev.Notification.NotificationShown)
}

func TestWithDelaysOverridesCadence(t *testing.T) {
	d, _, _ := newTestDispatcher(t, &mockAcknowledger{}, WithDelays(0, 250*time.Millisecond))

	delays := d.Dispatch(batchOf("b", notifications(1, 2, 3)...), "tok")

	assert.Equal(t, []time.Duration{0, 250 * time.Millisecond, 500 * time.Millisecond}, delays)
}

func TestAcknowledgementIsIdempotent(t *testing.T) {
	sched := NewManualScheduler()
	backend, ts := newFakeBackend(t, sched)
	d, _, _ := newTestDispatcher(t, api.NewClient(ts.URL), WithScheduler(sched))

	n := model.Notification{ID: 5, UserID: 7, AwardID: 9}
	d.Dispatch(batchOf("one", n), "tok")
	sched.Advance(time.Second)
	d.Dispatch(batchOf("two", n.MarkedShown()), "tok")
	sched.Advance(time.Second)

	puts := backend.recorded()
	require.Len(t, puts, 2)
	assert.Equal(t, puts[0].Body, puts[1].Body)
}
