package queries

import (
	"context"
	"testing"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	byID map[uuid.UUID]*domain.Item
}

func (f *fakeItems) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	return f.byID[id], nil
}

func (f *fakeItems) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	items := make([]*domain.Item, 0, len(f.byID))
	for _, item := range f.byID {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeItems) Save(ctx context.Context, userID uuid.UUID, item *domain.Item) error {
	f.byID[item.ID()] = item
	return nil
}

func TestGetItemHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	item := domain.NewItem("renew the lease")
	items := &fakeItems{byID: map[uuid.UUID]*domain.Item{item.ID(): item}}
	handler := NewGetItemHandler(items)

	dto, err := handler.Handle(ctx, GetItemQuery{UserID: userID, ItemID: item.ID()})

	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, "renew the lease", dto.Summary)
}

func TestGetItemHandler_Handle_NotFound(t *testing.T) {
	ctx := context.Background()
	items := &fakeItems{byID: map[uuid.UUID]*domain.Item{}}
	handler := NewGetItemHandler(items)

	dto, err := handler.Handle(ctx, GetItemQuery{ItemID: uuid.New()})

	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Nil(t, dto)
}
