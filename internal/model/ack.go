package model

import "time"

// AckStatus is the outcome of one scheduled acknowledgement.
type AckStatus string

const (
	// AckAcknowledged means the backend accepted the shown flag.
	AckAcknowledged AckStatus = "acknowledged"
	// AckFailed means the update request failed.
	AckFailed AckStatus = "failed"
	// AckSkipped means nothing was scheduled because no token was held.
	AckSkipped AckStatus = "skipped"
	// AckCancelled means a newer batch superseded the pending action.
	AckCancelled AckStatus = "cancelled"
)

// AckStatuses lists every status in display order.
var AckStatuses = []AckStatus{AckAcknowledged, AckFailed, AckSkipped, AckCancelled}

// AckRecord is one row of the local acknowledgement journal.
type AckRecord struct {
	ID             string    `db:"id"`
	BatchID        string    `db:"batch_id"`
	NotificationID int       `db:"notification_id"`
	AwardID        int       `db:"award_id"`
	Status         AckStatus `db:"status"`
	Error          string    `db:"error"`
	CreatedAt      time.Time `db:"created_at"`
}
