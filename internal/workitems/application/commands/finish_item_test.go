package commands

import (
	"context"
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFinishItemHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("sets finished and raises ItemFinishedEvent", func(t *testing.T) {
		items := newFakeItemRepo()
		item := domain.NewItem("water the plants")
		items.byID[item.ID()] = item

		outboxRepo := new(mockOutboxRepo)
		outboxRepo.On("SaveBatch", ctx, mock.Anything).Return(nil)
		uow := alwaysCommitUOW(ctx)
		handler := NewFinishItemHandler(items, outboxRepo, uow)

		when := time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC)
		err := handler.Handle(ctx, FinishItemCommand{UserID: userID, ItemID: item.ID(), When: when})

		require.NoError(t, err)
		require.NotNil(t, items.byID[item.ID()].Finished())
		require.True(t, items.byID[item.ID()].Finished().Equal(when))
		outboxRepo.AssertExpectations(t)
	})

	t.Run("missing item surfaces ErrItemNotFound", func(t *testing.T) {
		items := newFakeItemRepo()
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		uow.On("Begin", ctx).Return(ctx, nil)
		uow.On("Rollback", ctx).Return(nil)
		handler := NewFinishItemHandler(items, outboxRepo, uow)

		err := handler.Handle(ctx, FinishItemCommand{UserID: userID, ItemID: uuid.New(), When: time.Now()})

		require.ErrorIs(t, err, domain.ErrItemNotFound)
		uow.AssertExpectations(t)
	})
}
