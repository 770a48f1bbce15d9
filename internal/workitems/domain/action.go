package domain

import "github.com/google/uuid"

// Action is a closed sum type over the urgent actions the engine can
// ask the user to perform against an item. PickWhatShouldBeDoneFirst
// is synthesized only by the Priority Ranker (C7), never emitted by
// the Action Emitter (C6).
type Action interface {
	isAction()
	// TargetItemID returns the item this action concerns. For
	// PickWhatShouldBeDoneFirst this is the zero UUID; callers should
	// inspect Choices instead.
	TargetItemID() uuid.UUID
}

type SetReadyAndUrgency struct {
	ItemID uuid.UUID
}

func (SetReadyAndUrgency) isAction() {}
func (a SetReadyAndUrgency) TargetItemID() uuid.UUID { return a.ItemID }

type ParentBackToAMotivation struct {
	ItemID uuid.UUID
}

func (ParentBackToAMotivation) isAction() {}
func (a ParentBackToAMotivation) TargetItemID() uuid.UUID { return a.ItemID }

type ReviewItem struct {
	ItemID uuid.UUID
}

func (ReviewItem) isAction() {}
func (a ReviewItem) TargetItemID() uuid.UUID { return a.ItemID }

type PickItemReviewFrequency struct {
	ItemID uuid.UUID
}

func (PickItemReviewFrequency) isAction() {}
func (a PickItemReviewFrequency) TargetItemID() uuid.UUID { return a.ItemID }

type MakeProgress struct {
	ItemID uuid.UUID
}

func (MakeProgress) isAction() {}
func (a MakeProgress) TargetItemID() uuid.UUID { return a.ItemID }

// PickWhatShouldBeDoneFirst is synthesized by C7 when a bucket's
// in-the-moment priorities leave more than one action standing.
type PickWhatShouldBeDoneFirst struct {
	Choices []Action
}

func (PickWhatShouldBeDoneFirst) isAction() {}
func (PickWhatShouldBeDoneFirst) TargetItemID() uuid.UUID { return uuid.Nil }

// ActionsEqual reports structural equality between two actions,
// comparing Action kind and target item id (or, for
// PickWhatShouldBeDoneFirst, its choice set order-insensitively).
func ActionsEqual(a, b Action) bool {
	switch av := a.(type) {
	case PickWhatShouldBeDoneFirst:
		bv, ok := b.(PickWhatShouldBeDoneFirst)
		if !ok || len(av.Choices) != len(bv.Choices) {
			return false
		}
		for _, ac := range av.Choices {
			found := false
			for _, bc := range bv.Choices {
				if ActionsEqual(ac, bc) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return sameActionKind(a, b) && a.TargetItemID() == b.TargetItemID()
	}
}

func sameActionKind(a, b Action) bool {
	switch a.(type) {
	case SetReadyAndUrgency:
		_, ok := b.(SetReadyAndUrgency)
		return ok
	case ParentBackToAMotivation:
		_, ok := b.(ParentBackToAMotivation)
		return ok
	case ReviewItem:
		_, ok := b.(ReviewItem)
		return ok
	case PickItemReviewFrequency:
		_, ok := b.(PickItemReviewFrequency)
		return ok
	case MakeProgress:
		_, ok := b.(MakeProgress)
		return ok
	default:
		return false
	}
}
