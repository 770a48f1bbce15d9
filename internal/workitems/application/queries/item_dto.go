package queries

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
)

// ItemDTO is a data transfer object for items, following the teacher's
// HabitDTO style: a flat read-model shape independent of the
// aggregate's internal representation.
type ItemDTO struct {
	ID              uuid.UUID
	Summary         string
	Created         time.Time
	Finished        *time.Time
	Type            domain.ItemType
	GoalControl     domain.GoalControl
	MotivationKind  domain.MotivationKind
	Responsibility  domain.Responsibility
	Children        []uuid.UUID
	Dependencies    []domain.Dependency
	UrgencyPlan     domain.UrgencyPlan
	ReviewFrequency domain.Frequency
	ReviewGuidance  domain.ReviewGuidance
	LastReviewed    *time.Time
	NotesLocation   *string
}

func toItemDTO(item *domain.Item) ItemDTO {
	return ItemDTO{
		ID:              item.ID(),
		Summary:         item.Summary(),
		Created:         item.Created(),
		Finished:        item.Finished(),
		Type:            item.Type(),
		GoalControl:     item.GoalControl(),
		MotivationKind:  item.MotivationKind(),
		Responsibility:  item.Responsibility(),
		Children:        item.Children(),
		Dependencies:    item.Dependencies(),
		UrgencyPlan:     item.UrgencyPlan(),
		ReviewFrequency: item.ReviewFrequency(),
		ReviewGuidance:  item.ReviewGuidance(),
		LastReviewed:    item.LastReviewed(),
		NotesLocation:   item.NotesLocation(),
	}
}
