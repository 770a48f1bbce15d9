package queries

import (
	"context"
	"sort"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// ListItemsQuery contains the parameters for listing items.
type ListItemsQuery struct {
	UserID          uuid.UUID
	IncludeFinished bool
	Type            *domain.ItemType // filter to a single ItemType when non-nil
	SortBy          string           // "summary", "created"; default is store order
	SortOrder       string           // "asc", "desc"; default "asc"
}

// ListItemsHandler handles the ListItemsQuery.
type ListItemsHandler struct {
	items domain.ItemRepository
}

// NewListItemsHandler creates a new ListItemsHandler.
func NewListItemsHandler(items domain.ItemRepository) *ListItemsHandler {
	return &ListItemsHandler{items: items}
}

// Handle executes the ListItemsQuery.
func (h *ListItemsHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ItemDTO, error) {
	all, err := h.items.FindAllByUser(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Item, 0, len(all))
	for _, item := range all {
		if !query.IncludeFinished && item.IsFinished() {
			continue
		}
		if query.Type != nil && item.Type() != *query.Type {
			continue
		}
		filtered = append(filtered, item)
	}

	sortItems(filtered, query.SortBy, query.SortOrder)

	dtos := make([]ItemDTO, len(filtered))
	for i, item := range filtered {
		dtos[i] = toItemDTO(item)
	}
	return dtos, nil
}

func sortItems(items []*domain.Item, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	ascending := sortOrder != "desc"

	sort.SliceStable(items, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "created":
			less = items[i].Created().Before(items[j].Created())
		case "summary":
			less = items[i].Summary() < items[j].Summary()
		default:
			return false
		}
		if ascending {
			return less
		}
		return !less
	})
}
