package queries

import (
	"context"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/engine"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
)

// GetDoNowListQuery runs the full C1-C7 pipeline for a single user:
// load the snapshot, build nodes, and rank.
type GetDoNowListQuery struct {
	UserID uuid.UUID
}

// ActionDTO mirrors domain.Action for transport: a kind tag plus the
// fields relevant to that kind, since Action is a closed interface the
// outer layers (CLI/MCP) should not need to type-switch on.
type ActionDTO struct {
	Kind    string
	ItemID  uuid.UUID
	Choices []ActionDTO // populated only for PickWhatShouldBeDoneFirst
}

func toActionDTO(a domain.Action) ActionDTO {
	switch v := a.(type) {
	case domain.SetReadyAndUrgency:
		return ActionDTO{Kind: "SetReadyAndUrgency", ItemID: v.ItemID}
	case domain.ParentBackToAMotivation:
		return ActionDTO{Kind: "ParentBackToAMotivation", ItemID: v.ItemID}
	case domain.ReviewItem:
		return ActionDTO{Kind: "ReviewItem", ItemID: v.ItemID}
	case domain.PickItemReviewFrequency:
		return ActionDTO{Kind: "PickItemReviewFrequency", ItemID: v.ItemID}
	case domain.MakeProgress:
		return ActionDTO{Kind: "MakeProgress", ItemID: v.ItemID}
	case domain.PickWhatShouldBeDoneFirst:
		choices := make([]ActionDTO, len(v.Choices))
		for i, c := range v.Choices {
			choices[i] = toActionDTO(c)
		}
		return ActionDTO{Kind: "PickWhatShouldBeDoneFirst", Choices: choices}
	default:
		return ActionDTO{Kind: "Unknown"}
	}
}

// repositoryStore adapts the four per-aggregate repositories into the
// single snapshot.Store C1 reads from, scoped to one user.
type repositoryStore struct {
	ctx        context.Context
	userID     uuid.UUID
	items      domain.ItemRepository
	events     domain.EventRepository
	timeSpent  domain.TimeSpentRepository
	priorities domain.InTheMomentPriorityRepository
}

func (s *repositoryStore) AllItems() (map[uuid.UUID]*domain.Item, error) {
	items, err := s.items.FindAllByUser(s.ctx, s.userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Item, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}
	return byID, nil
}

func (s *repositoryStore) AllEvents() (map[uuid.UUID]*domain.Event, error) {
	events, err := s.events.FindAllByUser(s.ctx, s.userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Event, len(events))
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	return byID, nil
}

func (s *repositoryStore) AllTimeSpent() ([]domain.TimeSpent, error) {
	return s.timeSpent.FindAllByUser(s.ctx, s.userID)
}

func (s *repositoryStore) AllInTheMomentPriorities() ([]domain.InTheMomentPriority, error) {
	return s.priorities.FindAllByUser(s.ctx, s.userID)
}

// GetDoNowListHandler handles GetDoNowListQuery.
type GetDoNowListHandler struct {
	items      domain.ItemRepository
	events     domain.EventRepository
	timeSpent  domain.TimeSpentRepository
	priorities domain.InTheMomentPriorityRepository
	now        func() time.Time
}

// NewGetDoNowListHandler creates a new GetDoNowListHandler. now
// defaults to time.Now when nil, overridable for deterministic tests.
func NewGetDoNowListHandler(
	items domain.ItemRepository,
	events domain.EventRepository,
	timeSpent domain.TimeSpentRepository,
	priorities domain.InTheMomentPriorityRepository,
	now func() time.Time,
) *GetDoNowListHandler {
	if now == nil {
		now = time.Now
	}
	return &GetDoNowListHandler{items: items, events: events, timeSpent: timeSpent, priorities: priorities, now: now}
}

// Handle executes the GetDoNowListQuery, running C1 (Load) through C7
// (Rank) and returning the ranked do-now list as DTOs.
func (h *GetDoNowListHandler) Handle(ctx context.Context, query GetDoNowListQuery) ([]ActionDTO, error) {
	store := &repositoryStore{
		ctx:        ctx,
		userID:     query.UserID,
		items:      h.items,
		events:     h.events,
		timeSpent:  h.timeSpent,
		priorities: h.priorities,
	}

	snap, err := snapshot.Load(store)
	if err != nil {
		return nil, err
	}

	now := h.now()
	nodes := snapshot.BuildNodes(snap, now)
	ranked := engine.Rank(snap, nodes, now)

	dtos := make([]ActionDTO, len(ranked))
	for i, a := range ranked {
		dtos[i] = toActionDTO(a)
	}
	return dtos, nil
}
