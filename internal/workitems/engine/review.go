package engine

import (
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
)

// NeedsReview implements C5: an item needs review when its review
// frequency and guidance are set and either it has never been
// reviewed, or the interval has elapsed (§4.5).
func NeedsReview(item *domain.Item, now time.Time) bool {
	if item.ReviewFrequency() == nil || item.ReviewGuidance() == domain.ReviewGuidanceUnset {
		return false
	}
	interval, ok := domain.Interval(item.ReviewFrequency())
	if !ok {
		return false
	}
	if item.LastReviewed() == nil {
		return true
	}
	return item.LastReviewed().Add(interval).Before(now)
}

// NeedsReviewFrequency implements the second half of §4.5: an item
// needs to pick a review frequency when its frequency is unset and an
// ancestor's guidance requires descendants to carry their own
// frequency. The nearest ancestor guidance wins; ReviewGuidanceUnset
// propagates further up the chain.
func NeedsReviewFrequency(items map[uuid.UUID]*domain.Item, node *snapshot.Node, item *domain.Item) bool {
	if item.ReviewFrequency() != nil {
		return false
	}
	for _, ancestorID := range node.ParentChain {
		ancestor, ok := items[ancestorID]
		if !ok {
			continue
		}
		switch ancestor.ReviewGuidance() {
		case domain.ReviewChildrenSeparately:
			return true
		case domain.AlwaysReviewChildrenWithThisItem:
			return false
		default:
			continue
		}
	}
	return false
}
