package commands

import (
	"context"
	"testing"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentItemHandler_HandleWithExistingItem(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	parent := domain.NewItem("ship the release")
	child := domain.NewItem("write the changelog")
	items.byID[parent.ID()] = parent
	items.byID[child.ID()] = child

	outboxRepo := new(mockOutboxRepo)
	uow := alwaysCommitUOW(ctx)
	handler := NewParentItemHandler(items, outboxRepo, uow)

	err := handler.HandleWithExistingItem(ctx, ParentItemWithExistingItemCommand{
		UserID:   userID,
		ChildID:  child.ID(),
		ParentID: parent.ID(),
	})

	require.NoError(t, err)
	assert.True(t, items.byID[parent.ID()].HasChild(child.ID()))
}

func TestParentItemHandler_HandleWithExistingItem_PositionNotFound(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	parent := domain.NewItem("ship the release")
	child := domain.NewItem("write the changelog")
	items.byID[parent.ID()] = parent
	items.byID[child.ID()] = child

	outboxRepo := new(mockOutboxRepo)
	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(ctx, nil)
	uow.On("Rollback", ctx).Return(nil)
	handler := NewParentItemHandler(items, outboxRepo, uow)

	missingSibling := uuid.New()
	err := handler.HandleWithExistingItem(ctx, ParentItemWithExistingItemCommand{
		UserID:   userID,
		ChildID:  child.ID(),
		ParentID: parent.ID(),
		Before:   &missingSibling,
	})

	var posErr *domain.PositionNotFoundError
	require.ErrorAs(t, err, &posErr)
	uow.AssertExpectations(t)
}

func TestParentItemHandler_HandleRemoveParent(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	parent := domain.NewItem("ship the release")
	child := domain.NewItem("write the changelog")
	require.NoError(t, parent.AddChild(child.ID(), nil))
	items.byID[parent.ID()] = parent
	items.byID[child.ID()] = child

	outboxRepo := new(mockOutboxRepo)
	uow := alwaysCommitUOW(ctx)
	handler := NewParentItemHandler(items, outboxRepo, uow)

	err := handler.HandleRemoveParent(ctx, ParentItemRemoveParentCommand{
		UserID:   userID,
		ChildID:  child.ID(),
		ParentID: parent.ID(),
	})

	require.NoError(t, err)
	assert.False(t, items.byID[parent.ID()].HasChild(child.ID()))
}
