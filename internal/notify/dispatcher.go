package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
)

// Default acknowledgement cadence.
const (
	DefaultBaseDelay = 1000 * time.Millisecond
	DefaultStepDelay = 4000 * time.Millisecond
)

// ackTimeout bounds a single acknowledgement request.
const ackTimeout = 15 * time.Second

// Acknowledger marks a notification as shown on the backend.
type Acknowledger interface {
	MarkNotificationShown(ctx context.Context, token string, n model.Notification) (*model.Notification, error)
}

// Journal records acknowledgement outcomes locally.
type Journal interface {
	RecordAck(ctx context.Context, rec model.AckRecord) error
}

// AckEvent is a tea.Msg reporting the outcome of one scheduled
// acknowledgement.
type AckEvent struct {
	BatchID      string
	Index        int
	Notification model.Notification
	Status       model.AckStatus
	Err          error
	At           time.Time
}

// pendingAck is an action that has been scheduled but has not started.
type pendingAck struct {
	timer        Timer
	notification model.Notification
}

// Dispatcher staggers backend acknowledgements for one batch at a time. A
// new batch cancels every action of the previous one that has not started;
// actions already running are allowed to finish.
type Dispatcher struct {
	ack     Acknowledger
	cue     *Cue
	sched   Scheduler
	journal Journal
	log     logrus.FieldLogger
	now     func() time.Time

	baseDelay time.Duration
	stepDelay time.Duration

	mu      sync.Mutex
	batchID string
	pending map[int]pendingAck
	closed  bool

	ctx    context.Context
	cancel context.CancelFunc
	events chan AckEvent
	done   chan struct{}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDelays overrides the base and step delays.
func WithDelays(base, step time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if base >= 0 {
			d.baseDelay = base
		}
		if step >= 0 {
			d.stepDelay = step
		}
	}
}

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) DispatcherOption {
	return func(d *Dispatcher) {
		if s != nil {
			d.sched = s
		}
	}
}

// WithJournal records every outcome in j.
func WithJournal(j Journal) DispatcherOption {
	return func(d *Dispatcher) {
		d.journal = j
	}
}

// WithDispatcherLogger sets the diagnostic logger.
func WithDispatcherLogger(log logrus.FieldLogger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a Dispatcher that acknowledges through ack and plays
// cue after each attempt.
func NewDispatcher(ack Acknowledger, cue *Cue, opts ...DispatcherOption) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		ack:       ack,
		cue:       cue,
		sched:     RealScheduler{},
		log:       logrus.StandardLogger(),
		now:       time.Now,
		baseDelay: DefaultBaseDelay,
		stepDelay: DefaultStepDelay,
		pending:   make(map[int]pendingAck),
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan AckEvent, 64),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the offset of the i-th acknowledgement from dispatch time.
func (d *Dispatcher) Delay(i int) time.Duration {
	return d.baseDelay + time.Duration(i)*d.stepDelay
}

// StepDelay returns the spacing between consecutive acknowledgements.
func (d *Dispatcher) StepDelay() time.Duration {
	return d.stepDelay
}

// Dispatch cancels the previous batch and schedules one acknowledgement per
// notification of batch, returning the scheduled delays in index order.
// With no token nothing is scheduled.
func (d *Dispatcher) Dispatch(batch model.Batch, token string) []time.Duration {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}

	cancelled := d.cancelLocked()
	d.batchID = batch.ID

	if token == "" {
		d.mu.Unlock()
		d.finishAll(cancelled)
		d.skip(batch)
		return []time.Duration{}
	}

	delays := make([]time.Duration, 0, batch.Len())
	for i, n := range batch.Notifications {
		delay := d.Delay(i)
		timer := d.sched.AfterFunc(delay, d.action(batch.ID, i, n, token))
		d.pending[i] = pendingAck{timer: timer, notification: n}
		delays = append(delays, delay)
	}
	d.mu.Unlock()

	d.finishAll(cancelled)

	if batch.Len() > 0 {
		d.log.WithFields(logrus.Fields{
			"batch_id": batch.ID,
			"count":    batch.Len(),
		}).Debug("scheduled notification acknowledgements")
	}
	return delays
}

// Cancel stops every pending action of the current batch.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	cancelled := d.cancelLocked()
	d.batchID = ""
	d.mu.Unlock()

	d.finishAll(cancelled)
}

// Close cancels pending work, aborts in-flight requests and refuses further
// batches.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	cancelled := d.cancelLocked()
	d.batchID = ""
	d.mu.Unlock()

	d.finishAll(cancelled)
	d.cancel()
	close(d.done)
}

// Pending returns how many actions are scheduled but not yet started.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// CurrentBatch returns the id of the batch being acknowledged, or "".
func (d *Dispatcher) CurrentBatch() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.batchID
}

// Events exposes the outcome stream.
func (d *Dispatcher) Events() <-chan AckEvent {
	return d.events
}

// WaitForEvent returns a tea.Cmd that waits for the next acknowledgement
// outcome. Call it again after handling each AckEvent to keep listening.
func (d *Dispatcher) WaitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-d.events:
			return ev
		case <-d.done:
			return nil
		}
	}
}

// cancelLocked stops every pending timer and returns a cancelled event for
// each action that will now never run. Callers must hold d.mu.
func (d *Dispatcher) cancelLocked() []AckEvent {
	if len(d.pending) == 0 {
		return nil
	}

	indexes := make([]int, 0, len(d.pending))
	for i := range d.pending {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	var cancelled []AckEvent
	for _, i := range indexes {
		p := d.pending[i]
		if p.timer.Stop() {
			cancelled = append(cancelled, AckEvent{
				BatchID:      d.batchID,
				Index:        i,
				Notification: p.notification,
				Status:       model.AckCancelled,
			})
		}
	}
	d.pending = make(map[int]pendingAck)
	return cancelled
}

// action builds the deferred acknowledgement for the i-th notification.
func (d *Dispatcher) action(batchID string, i int, n model.Notification, token string) func() {
	return func() {
		d.mu.Lock()
		if d.closed || d.batchID != batchID {
			d.mu.Unlock()
			// The timer fired before the batch was superseded, so
			// cancelLocked could not stop it and did not report it.
			d.finish(AckEvent{
				BatchID:      batchID,
				Index:        i,
				Notification: n,
				Status:       model.AckCancelled,
			})
			return
		}
		delete(d.pending, i)
		d.mu.Unlock()

		ctx, cancel := context.WithTimeout(d.ctx, ackTimeout)
		defer cancel()

		ev := AckEvent{BatchID: batchID, Index: i, Notification: n, Status: model.AckAcknowledged}

		updated, err := d.ack.MarkNotificationShown(ctx, token, n)
		if err != nil {
			ev.Status = model.AckFailed
			ev.Err = err
			d.log.WithError(err).WithFields(logrus.Fields{
				"batch_id":        batchID,
				"notification_id": n.ID,
			}).Error("failed to mark notification shown")
		} else if updated != nil {
			ev.Notification = *updated
		}

		d.cue.Play()
		d.finish(ev)
	}
}

// skip records a batch that could not be acknowledged for lack of a token.
func (d *Dispatcher) skip(batch model.Batch) {
	if batch.Len() == 0 {
		return
	}

	d.log.WithError(api.ErrAuthMissing).WithFields(logrus.Fields{
		"batch_id": batch.ID,
		"count":    batch.Len(),
	}).Warn("skipping notification acknowledgements")

	for i, n := range batch.Notifications {
		d.finish(AckEvent{
			BatchID:      batch.ID,
			Index:        i,
			Notification: n,
			Status:       model.AckSkipped,
			Err:          api.ErrAuthMissing,
		})
	}
}

func (d *Dispatcher) finishAll(evs []AckEvent) {
	for _, ev := range evs {
		d.finish(ev)
	}
}

// finish journals ev and publishes it without blocking.
func (d *Dispatcher) finish(ev AckEvent) {
	ev.At = d.now()

	if d.journal != nil {
		rec := model.AckRecord{
			BatchID:        ev.BatchID,
			NotificationID: ev.Notification.ID,
			AwardID:        ev.Notification.AwardID,
			Status:         ev.Status,
			CreatedAt:      ev.At,
		}
		if ev.Err != nil {
			rec.Error = ev.Err.Error()
		}
		if err := d.journal.RecordAck(context.Background(), rec); err != nil {
			d.log.WithError(err).Warn("failed to journal acknowledgement")
		}
	}

	select {
	case d.events <- ev:
	default:
		// Drop if the UI is not draining events.
	}
}

