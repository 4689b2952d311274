package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAwardKnownIDs(t *testing.T) {
	first, err := LookupAward(1)
	require.NoError(t, err)
	assert.Equal(t, "Welcome Aboard", first.DisplayName)
	assert.Equal(t, "welcome_aboard.png", first.Image)

	last, err := LookupAward(AwardCount)
	require.NoError(t, err)
	assert.Equal(t, "Culinary Explorer", last.DisplayName)
}

func TestLookupAwardOutsideCatalog(t *testing.T) {
	for _, id := range []int{-1, 0, 17, 99} {
		entry, err := LookupAward(id)
		assert.ErrorIs(t, err, ErrUnknownAward, "id %d", id)
		assert.Empty(t, entry.DisplayName)
		assert.Empty(t, entry.Image)
	}
}

func TestAwardCatalogIsCompleteAndOrdered(t *testing.T) {
	entries := AwardCatalog()
	require.Len(t, entries, AwardCount)
	for i, e := range entries {
		assert.Equal(t, i+1, e.ID)
		assert.NotEmpty(t, e.DisplayName)
		assert.NotEmpty(t, e.Image)
	}
}

func TestMarkedShownKeepsOtherFields(t *testing.T) {
	n := Notification{ID: 1, UserID: 7, AwardID: 2}
	shown := n.MarkedShown()

	assert.True(t, shown.NotificationShown)
	assert.False(t, n.NotificationShown, "original is not mutated")
	assert.Equal(t, n.ID, shown.ID)
	assert.Equal(t, n.UserID, shown.UserID)
	assert.Equal(t, n.AwardID, shown.AwardID)
}
