package engine

import (
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/stretchr/testify/require"
)

func TestEmitActions_FinishedItemEmitsNothing(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	item.Finish(time.Now())
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	require.Empty(t, EmitActions(snap, nodes, item.ID(), now))
}

func TestEmitActions_NonMotivationWithoutParentIsSentBack(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	require.NoError(t, item.SetType(domain.ActionType))
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	actions := EmitActions(snap, nodes, item.ID(), now)
	require.Equal(t, []domain.Action{domain.ParentBackToAMotivation{ItemID: item.ID()}}, actions)
}

func TestEmitActions_MotivationWithoutParentIsNotSentBack(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Motivation")
	require.NoError(t, item.SetType(domain.MotivationType))
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	actions := EmitActions(snap, nodes, item.ID(), now)
	for _, a := range actions {
		_, ok := a.(domain.ParentBackToAMotivation)
		require.False(t, ok)
	}
}

func TestEmitActions_NoPlanNoChildrenNotReactiveNeedsUrgency(t *testing.T) {
	store := newEmptyStore()
	parent := domain.NewItem("Motivation")
	require.NoError(t, parent.SetType(domain.MotivationType))
	item := domain.NewItem("Task")
	require.NoError(t, item.SetType(domain.ActionType))
	require.NoError(t, parent.AddChild(item.ID(), nil))
	store.items[parent.ID()] = parent
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	actions := EmitActions(snap, nodes, item.ID(), now)
	require.Contains(t, actions, domain.SetReadyAndUrgency{ItemID: item.ID()})
}

func TestEmitActions_ReadyUrgentEmitsMakeProgress(t *testing.T) {
	store := newEmptyStore()
	parent := domain.NewItem("Motivation")
	require.NoError(t, parent.SetType(domain.MotivationType))
	item := domain.NewItem("Task")
	require.NoError(t, item.SetType(domain.ActionType))
	require.NoError(t, item.SetUrgencyPlan(domain.StaysTheSame{Value: domain.InTheModeDefinitelyUrgent{}}))
	require.NoError(t, parent.AddChild(item.ID(), nil))
	store.items[parent.ID()] = parent
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	actions := EmitActions(snap, nodes, item.ID(), now)
	require.Contains(t, actions, domain.MakeProgress{ItemID: item.ID()})
}

func TestEmitActions_NotReadyBlocksMakeProgress(t *testing.T) {
	store := newEmptyStore()
	parent := domain.NewItem("Motivation")
	require.NoError(t, parent.SetType(domain.MotivationType))
	blocker := domain.NewItem("Blocker")
	item := domain.NewItem("Task")
	require.NoError(t, item.SetType(domain.ActionType))
	require.NoError(t, item.SetUrgencyPlan(domain.StaysTheSame{Value: domain.InTheModeDefinitelyUrgent{}}))
	item.AddDependency(domain.AfterItem{ItemID: blocker.ID()})
	require.NoError(t, parent.AddChild(item.ID(), nil))
	store.items[parent.ID()] = parent
	store.items[item.ID()] = item
	store.items[blocker.ID()] = blocker

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	actions := EmitActions(snap, nodes, item.ID(), now)
	require.NotContains(t, actions, domain.MakeProgress{ItemID: item.ID()})
}
