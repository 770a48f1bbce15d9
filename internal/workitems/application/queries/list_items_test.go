package queries

import (
	"context"
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListItemsHandler_Handle_ExcludesFinishedByDefault(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	open := domain.NewItem("open item")
	done := domain.NewItem("done item")
	done.Finish(time.Now())

	items := &fakeItems{byID: map[uuid.UUID]*domain.Item{open.ID(): open, done.ID(): done}}
	handler := NewListItemsHandler(items)

	dtos, err := handler.Handle(ctx, ListItemsQuery{UserID: userID})

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "open item", dtos[0].Summary)
}

func TestListItemsHandler_Handle_IncludeFinished(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	open := domain.NewItem("open item")
	done := domain.NewItem("done item")
	done.Finish(time.Now())

	items := &fakeItems{byID: map[uuid.UUID]*domain.Item{open.ID(): open, done.ID(): done}}
	handler := NewListItemsHandler(items)

	dtos, err := handler.Handle(ctx, ListItemsQuery{UserID: userID, IncludeFinished: true, SortBy: "summary"})

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "done item", dtos[0].Summary)
	assert.Equal(t, "open item", dtos[1].Summary)
}

func TestListItemsHandler_Handle_FilterByType(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	action := domain.NewItem("a task")
	require.NoError(t, action.SetType(domain.ActionType))
	goal := domain.NewItem("a goal")
	require.NoError(t, goal.SetType(domain.GoalType))

	items := &fakeItems{byID: map[uuid.UUID]*domain.Item{action.ID(): action, goal.ID(): goal}}
	handler := NewListItemsHandler(items)

	actionType := domain.ActionType
	dtos, err := handler.Handle(ctx, ListItemsQuery{UserID: userID, Type: &actionType})

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "a task", dtos[0].Summary)
}
