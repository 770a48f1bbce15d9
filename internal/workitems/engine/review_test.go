package engine

import (
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/stretchr/testify/require"
)

func TestNeedsReview_NeverReviewedIsDue(t *testing.T) {
	item := domain.NewItem("Goal")
	require.NoError(t, item.SetReviewFrequency(domain.Weekly{}))
	require.NoError(t, item.SetReviewGuidance(domain.ReviewChildrenSeparately))

	require.True(t, NeedsReview(item, time.Now()))
}

func TestNeedsReview_UnsetGuidanceNeverDue(t *testing.T) {
	item := domain.NewItem("Goal")
	require.NoError(t, item.SetReviewFrequency(domain.Weekly{}))

	require.False(t, NeedsReview(item, time.Now()))
}

func TestNeedsReview_WithinIntervalNotDue(t *testing.T) {
	item := domain.NewItem("Goal")
	now := time.Now()
	require.NoError(t, item.SetReviewFrequency(domain.Weekly{}))
	require.NoError(t, item.SetReviewGuidance(domain.ReviewChildrenSeparately))
	require.NoError(t, item.SetLastReviewed(now.Add(-time.Hour)))

	require.False(t, NeedsReview(item, now))
}

func TestNeedsReview_PastIntervalIsDue(t *testing.T) {
	item := domain.NewItem("Goal")
	now := time.Now()
	require.NoError(t, item.SetReviewFrequency(domain.Weekly{}))
	require.NoError(t, item.SetReviewGuidance(domain.ReviewChildrenSeparately))
	require.NoError(t, item.SetLastReviewed(now.Add(-8*24*time.Hour)))

	require.True(t, NeedsReview(item, now))
}

func TestNeedsReviewFrequency_NearestAncestorGuidanceWins(t *testing.T) {
	store := newEmptyStore()
	grandparent := domain.NewItem("Grandparent")
	require.NoError(t, grandparent.SetReviewGuidance(domain.AlwaysReviewChildrenWithThisItem))
	parent := domain.NewItem("Parent")
	require.NoError(t, parent.SetReviewGuidance(domain.ReviewChildrenSeparately))
	child := domain.NewItem("Child")

	require.NoError(t, grandparent.AddChild(parent.ID(), nil))
	require.NoError(t, parent.AddChild(child.ID(), nil))
	store.items[grandparent.ID()] = grandparent
	store.items[parent.ID()] = parent
	store.items[child.ID()] = child

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, time.Now())

	require.True(t, NeedsReviewFrequency(snap.Items, nodes[child.ID()], child))
}

func TestNeedsReviewFrequency_AlreadyHasFrequency(t *testing.T) {
	store := newEmptyStore()
	parent := domain.NewItem("Parent")
	require.NoError(t, parent.SetReviewGuidance(domain.ReviewChildrenSeparately))
	child := domain.NewItem("Child")
	require.NoError(t, child.SetReviewFrequency(domain.Monthly{}))
	require.NoError(t, parent.AddChild(child.ID(), nil))
	store.items[parent.ID()] = parent
	store.items[child.ID()] = child

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, time.Now())

	require.False(t, NeedsReviewFrequency(snap.Items, nodes[child.ID()], child))
}
