package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshan87986/CommunityHub/models"
	"github.com/darshan87986/CommunityHub/storage"
	"github.com/darshan87986/CommunityHub/store"
)

func TestMemoryEventCRUD(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	ev := models.Event{ID: "e1", Title: "Clean-up"}
	require.NoError(t, mem.CreateEvent(ctx, ev))

	ev.Title = "Park Clean-up"
	require.NoError(t, mem.UpdateEvent(ctx, ev))

	events, err := mem.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Park Clean-up", events[0].Title)

	// Update of an unknown id behaves as upsert, matching the Mongo impl.
	require.NoError(t, mem.UpdateEvent(ctx, models.Event{ID: "e2", Title: "Gala"}))
	events, err = mem.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	require.NoError(t, mem.DeleteEvent(ctx, "e1"))
	events, err = mem.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].ID)
}

func TestMemorySessionRecord(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()

	_, ok, err := mem.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	rec := store.SessionRecord{Token: "tok", User: models.User{ID: "u1", Email: "jane@x.com"}}
	require.NoError(t, mem.Save(ctx, rec))

	got, ok, err := mem.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)

	require.NoError(t, mem.Clear(ctx))
	require.NoError(t, mem.Clear(ctx))
	_, ok, err = mem.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
