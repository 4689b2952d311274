package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Notification signals a newly earned award. The backend owns the record;
// the client holds a session-scoped copy that is replaced on every fetch.
type Notification struct {
	// ID is the backend identifier for this notification.
	ID int `json:"id"`

	// UserID is the user who earned the award.
	UserID int `json:"userId"`

	// AwardID indexes the static award catalog (1..16).
	AwardID int `json:"awardId"`

	// NotificationShown is set once the client has acknowledged the toast.
	NotificationShown bool `json:"notificationShown"`

	// CreatedAt is when the backend generated the notification, if known.
	CreatedAt *Timestamp `json:"createdAt,omitempty"`

	// fields is the object exactly as the backend delivered it, including
	// members the typed view above does not model.
	fields map[string]json.RawMessage
}

// notificationView has Notification's fields without its JSON methods.
type notificationView Notification

// UnmarshalJSON decodes the typed view and keeps the raw object.
func (n *Notification) UnmarshalJSON(data []byte) error {
	var v notificationView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*n = Notification(v)
	n.fields = fields
	return nil
}

// MarshalJSON re-encodes a decoded notification as delivered, taking only
// notificationShown from the typed view. A notification built in code is
// encoded from its typed fields.
func (n Notification) MarshalJSON() ([]byte, error) {
	if n.fields == nil {
		return json.Marshal(notificationView(n))
	}

	out := make(map[string]json.RawMessage, len(n.fields)+1)
	for k, v := range n.fields {
		out[k] = v
	}
	shown, err := json.Marshal(n.NotificationShown)
	if err != nil {
		return nil, err
	}
	out["notificationShown"] = shown
	return json.Marshal(out)
}

// MarkedShown returns a copy of n with NotificationShown set. Every other
// field is left as delivered so the copy can be sent as a full replace.
func (n Notification) MarkedShown() Notification {
	n.NotificationShown = true
	return n
}

// Timestamp is a backend time that tolerates the shapes Java backends emit:
// RFC 3339, a zone-less local date-time (read as UTC) and the
// [year, month, day, hour, minute, second, nanos] array.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON never fails on an unrecognised value; the time is left zero
// so one odd field cannot drop a whole notification.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	t.Time = time.Time{}

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil

	case len(data) > 0 && data[0] == '[':
		var parts []int
		if err := json.Unmarshal(data, &parts); err != nil || len(parts) < 3 {
			return nil
		}
		for len(parts) < 7 {
			parts = append(parts, 0)
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2],
			parts[3], parts[4], parts[5], parts[6], time.UTC)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Batch is the set of notifications returned by a single fetch, processed
// together with one stagger schedule.
type Batch struct {
	ID            string
	UserID        int
	Notifications []Notification
	FetchedAt     time.Time
}

// Len returns the number of notifications in the batch.
func (b Batch) Len() int {
	return len(b.Notifications)
}
