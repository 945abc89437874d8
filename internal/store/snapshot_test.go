package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hooks/internal/domain"
	"hooks/internal/store"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestFileSnapshotRoundTrip(t *testing.T) {
	snap := store.NewFileSnapshot(t.TempDir() + "/notifications.json")

	_, err := snap.Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNoSnapshot)

	feed := []domain.Notification{{
		ID:        "n-1",
		Title:     "Order shipped",
		Message:   "Your order is on its way",
		Type:      domain.NotificationOrder,
		Priority:  domain.PriorityHigh,
		Read:      true,
		Link:      "/orders",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}}
	require.NoError(t, snap.Save(context.Background(), feed))

	loaded, err := snap.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, feed[0].ID, loaded[0].ID)
	assert.Equal(t, feed[0].Type, loaded[0].Type)
	assert.True(t, loaded[0].Read)
}

func TestFileSnapshotOverwrites(t *testing.T) {
	snap := store.NewFileSnapshot(t.TempDir() + "/notifications.json")

	require.NoError(t, snap.Save(context.Background(), []domain.Notification{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, snap.Save(context.Background(), []domain.Notification{{ID: "c"}}))

	loaded, err := snap.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1, "save is a full-state overwrite, not an append")
	assert.Equal(t, "c", loaded[0].ID)
}
