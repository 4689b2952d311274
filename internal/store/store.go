package store

import (
	"context"
	"time"

	"github.com/nhle/munchie/internal/model"
)

// AckFilter narrows acknowledgement journal queries.
type AckFilter struct {
	BatchID *string
	Status  *model.AckStatus
	Limit   int
}

// Store defines the persistence interface for the local acknowledgement
// journal.
type Store interface {
	RecordAck(ctx context.Context, rec model.AckRecord) error
	ListAcks(ctx context.Context, filter AckFilter) ([]model.AckRecord, error)
	CountAcks(ctx context.Context) (map[model.AckStatus]int, error)
	PruneAcks(ctx context.Context, before time.Time) (int64, error)
	Close() error
}
