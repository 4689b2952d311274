package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/testutil"
	"github.com/nhle/munchie/internal/ui/journal"
)

func TestJournalShowsRecordedAcks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.RecordAck(ctx, model.AckRecord{
		BatchID: "batch-one", NotificationID: 11, AwardID: 2,
		Status: model.AckAcknowledged, CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, s.RecordAck(ctx, model.AckRecord{
		BatchID: "batch-one", NotificationID: 12, AwardID: 99,
		Status: model.AckFailed, Error: "status 500", CreatedAt: now,
	}))

	m := journal.New(s, 140, 20)
	m, _ = m.Update(m.Init()())

	view := m.View()
	assert.Contains(t, view, "acknowledged 1")
	assert.Contains(t, view, "failed 1")
	assert.Contains(t, view, "First Taste")
	assert.Contains(t, view, "#99")
	assert.Contains(t, view, "status 500")
}

func TestJournalEmpty(t *testing.T) {
	m := journal.New(testutil.NewTestStore(t), 100, 20)
	m, _ = m.Update(m.Init()())

	assert.Contains(t, m.View(), "Nothing acknowledged yet.")
}
