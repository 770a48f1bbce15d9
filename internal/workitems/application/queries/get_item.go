package queries

import (
	"context"
	"errors"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// ErrItemNotFound is returned when a queried item does not exist for
// the given user.
var ErrItemNotFound = errors.New("item not found")

// GetItemQuery contains the parameters for getting a single item.
type GetItemQuery struct {
	UserID uuid.UUID
	ItemID uuid.UUID
}

// GetItemHandler handles the GetItemQuery.
type GetItemHandler struct {
	items domain.ItemRepository
}

// NewGetItemHandler creates a new GetItemHandler.
func NewGetItemHandler(items domain.ItemRepository) *GetItemHandler {
	return &GetItemHandler{items: items}
}

// Handle executes the GetItemQuery.
func (h *GetItemHandler) Handle(ctx context.Context, query GetItemQuery) (*ItemDTO, error) {
	item, err := h.items.FindByID(ctx, query.UserID, query.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	dto := toItemDTO(item)
	return &dto, nil
}
