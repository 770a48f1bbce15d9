package commands

import (
	"context"
	"testing"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCoverItemHandler_HandleWithNewItem(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	covered := domain.NewItem("finish the report")
	items.byID[covered.ID()] = covered

	outboxRepo := new(mockOutboxRepo)
	outboxRepo.On("SaveBatch", ctx, mock.Anything).Return(nil)
	uow := alwaysCommitUOW(ctx)
	handler := NewCoverItemHandler(items, outboxRepo, uow)

	result, err := handler.HandleWithNewItem(ctx, CoverItemWithNewItemCommand{
		UserID:         userID,
		CoveredItemID:  covered.ID(),
		NewItemSummary: "gather the Q2 numbers",
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEqual(t, uuid.Nil, result.CoveringItemID)

	coveringItem := items.byID[result.CoveringItemID]
	require.NotNil(t, coveringItem)
	assert.Equal(t, "gather the Q2 numbers", coveringItem.Summary())

	coveredAfter := items.byID[covered.ID()]
	assert.True(t, coveredAfter.HasDependency(domain.AfterItem{ItemID: result.CoveringItemID}))
}

func TestCoverItemHandler_HandleWithExistingItem(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	covered := domain.NewItem("finish the report")
	covering := domain.NewItem("gather the Q2 numbers")
	items.byID[covered.ID()] = covered
	items.byID[covering.ID()] = covering

	outboxRepo := new(mockOutboxRepo)
	uow := alwaysCommitUOW(ctx)
	handler := NewCoverItemHandler(items, outboxRepo, uow)

	err := handler.HandleWithExistingItem(ctx, CoverItemWithExistingItemCommand{
		UserID:        userID,
		CoveredItemID: covered.ID(),
		CoveringID:    covering.ID(),
	})

	require.NoError(t, err)
	assert.True(t, items.byID[covered.ID()].HasDependency(domain.AfterItem{ItemID: covering.ID()}))
}

func TestCoverItemHandler_HandleWithExistingItem_MissingCoveringItem(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	items := newFakeItemRepo()
	covered := domain.NewItem("finish the report")
	items.byID[covered.ID()] = covered

	outboxRepo := new(mockOutboxRepo)
	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(ctx, nil)
	uow.On("Rollback", ctx).Return(nil)
	handler := NewCoverItemHandler(items, outboxRepo, uow)

	err := handler.HandleWithExistingItem(ctx, CoverItemWithExistingItemCommand{
		UserID:        userID,
		CoveredItemID: covered.ID(),
		CoveringID:    uuid.New(),
	})

	require.ErrorIs(t, err, domain.ErrItemNotFound)
	uow.AssertExpectations(t)
}
