// Package notify sequences award notifications: it loads a user's unseen
// notifications, acknowledges them one at a time against the backend with a
// fixed stagger, plays a sound cue per acknowledgement and publishes each
// batch to the UI.
package notify

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/model"
)

// TokenSource yields the current access token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// BatchMsg is a tea.Msg carrying a freshly loaded batch for the feed.
type BatchMsg struct {
	Batch model.Batch
	Err   error
}

// Notifier is the single entry point that refreshes notifications after a
// triggering event such as login or recipe creation.
type Notifier struct {
	store      *Store
	dispatcher *Dispatcher
	tokens     TokenSource
	log        logrus.FieldLogger
	now        func() time.Time

	batches chan BatchMsg
}

// NewNotifier wires a store and dispatcher to the session's token source.
func NewNotifier(store *Store, dispatcher *Dispatcher, tokens TokenSource, log logrus.FieldLogger) *Notifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifier{
		store:      store,
		dispatcher: dispatcher,
		tokens:     tokens,
		log:        log,
		now:        time.Now,
		batches:    make(chan BatchMsg, 1),
	}
}

// RefreshNotifications reloads userID's notifications, supersedes any batch
// still being acknowledged and schedules the new one. A failed load behaves
// like an empty batch; the error is returned for callers that care.
func (n *Notifier) RefreshNotifications(ctx context.Context, userID int) (model.Batch, error) {
	items, err := n.store.Load(ctx, userID)

	batch := model.Batch{
		ID:            uuid.New().String(),
		UserID:        userID,
		Notifications: items,
		FetchedAt:     n.now(),
	}

	delays := n.dispatcher.Dispatch(batch, n.tokens.Token())
	n.log.WithFields(logrus.Fields{
		"batch_id":  batch.ID,
		"user_id":   userID,
		"count":     batch.Len(),
		"scheduled": len(delays),
	}).Info("notifications refreshed")

	n.publish(BatchMsg{Batch: batch, Err: err})
	return batch, err
}

// Reset cancels pending acknowledgements and empties the store and feed.
func (n *Notifier) Reset() {
	n.dispatcher.Cancel()
	n.store.Clear()
	n.publish(BatchMsg{Batch: model.Batch{ID: uuid.New().String(), FetchedAt: n.now()}})
}

// Notifications returns the currently held sequence.
func (n *Notifier) Notifications() []model.Notification {
	return n.store.Notifications()
}

// Dispatcher exposes the acknowledgement dispatcher.
func (n *Notifier) Dispatcher() *Dispatcher {
	return n.dispatcher
}

// WaitForAck returns a tea.Cmd that waits for the next acknowledgement
// outcome.
func (n *Notifier) WaitForAck() tea.Cmd {
	return n.dispatcher.WaitForEvent()
}

// Pending returns how many acknowledgements are still scheduled.
func (n *Notifier) Pending() int {
	return n.dispatcher.Pending()
}

// WaitForBatch returns a tea.Cmd that waits for the next published batch.
func (n *Notifier) WaitForBatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-n.batches:
			return msg
		case <-n.dispatcher.done:
			return nil
		}
	}
}

// publish keeps only the latest batch for the UI.
func (n *Notifier) publish(msg BatchMsg) {
	for {
		select {
		case n.batches <- msg:
			return
		default:
			select {
			case <-n.batches:
			default:
			}
		}
	}
}
