package commands

import (
	"context"
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyHandler_HandleAddAndRemove(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	events := newFakeEventRepo()
	item := domain.NewItem("file the taxes")
	items.byID[item.ID()] = item

	outboxRepo := new(mockOutboxRepo)
	uow := alwaysCommitUOW(ctx)
	handler := NewDependencyHandler(items, events, outboxRepo, uow)

	dep := domain.AfterDateTime{At: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, handler.HandleAdd(ctx, AddItemDependencyCommand{UserID: userID, ItemID: item.ID(), Dependency: dep}))
	assert.True(t, items.byID[item.ID()].HasDependency(dep))

	require.NoError(t, handler.HandleAdd(ctx, AddItemDependencyCommand{UserID: userID, ItemID: item.ID(), Dependency: dep}))
	assert.Len(t, items.byID[item.ID()].Dependencies(), 1, "adding the same dependency twice is idempotent")

	require.NoError(t, handler.HandleRemove(ctx, RemoveItemDependencyCommand{UserID: userID, ItemID: item.ID(), Dependency: dep}))
	assert.False(t, items.byID[item.ID()].HasDependency(dep))

	require.NoError(t, handler.HandleRemove(ctx, RemoveItemDependencyCommand{UserID: userID, ItemID: item.ID(), Dependency: dep}))
}

func TestDependencyHandler_HandleAddNewEvent(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	events := newFakeEventRepo()
	item := domain.NewItem("renew the passport")
	items.byID[item.ID()] = item

	outboxRepo := new(mockOutboxRepo)
	uow := alwaysCommitUOW(ctx)
	handler := NewDependencyHandler(items, events, outboxRepo, uow)

	result, err := handler.HandleAddNewEvent(ctx, AddItemDependencyNewEventCommand{
		UserID:       userID,
		ItemID:       item.ID(),
		EventSummary: "passport office opens",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "passport office opens", events.byID[result.EventID].Summary)
	assert.True(t, items.byID[item.ID()].HasDependency(domain.AfterEvent{EventID: result.EventID}))
}
