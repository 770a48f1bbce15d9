package engine

import (
	"testing"
	"time"

	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/donow-app/donow/internal/workitems/snapshot"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIsReady_NoDependencies(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, time.Now())

	require.True(t, IsReady(snap, nodes[item.ID()], time.Now()))
}

func TestIsReady_BlockedByFutureDateTime(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	now := time.Now()
	item.AddDependency(domain.AfterDateTime{At: now.Add(time.Hour)})
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, now)

	require.False(t, IsReady(snap, nodes[item.ID()], now))
}

func TestIsReady_UnblockedByPastDateTime(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	now := time.Now()
	item.AddDependency(domain.AfterDateTime{At: now.Add(-time.Hour)})
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, now)

	require.True(t, IsReady(snap, nodes[item.ID()], now))
}

func TestIsReady_BlockedByUnfinishedAfterItem(t *testing.T) {
	store := newEmptyStore()
	blocker := domain.NewItem("Blocker")
	item := domain.NewItem("Task")
	item.AddDependency(domain.AfterItem{ItemID: blocker.ID()})
	store.items[blocker.ID()] = blocker
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	require.False(t, IsReady(snap, nodes[item.ID()], now))
}

func TestIsReady_UnblockedWhenAfterItemFinished(t *testing.T) {
	store := newEmptyStore()
	blocker := domain.NewItem("Blocker")
	now := time.Now()
	blocker.Finish(now)
	item := domain.NewItem("Task")
	item.AddDependency(domain.AfterItem{ItemID: blocker.ID()})
	store.items[blocker.ID()] = blocker
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	nodes := snapshot.BuildNodes(snap, now)

	require.True(t, IsReady(snap, nodes[item.ID()], now))
}

func TestIsReady_BlockedByUntriggeredEvent(t *testing.T) {
	store := newEmptyStore()
	ev := domain.Event{ID: uuid.New(), Summary: "deploy"}
	item := domain.NewItem("Task")
	item.AddDependency(domain.AfterEvent{EventID: ev.ID})
	store.items[item.ID()] = item
	store.events[ev.ID] = &ev

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	require.False(t, IsReady(snap, nodes[item.ID()], now))
}

func TestIsReady_ReactiveItemIsNeverReady(t *testing.T) {
	store := newEmptyStore()
	item := domain.NewItem("Task")
	require.NoError(t, item.SetResponsibility(domain.ReactiveBeAvailableToAct))
	store.items[item.ID()] = item

	snap, err := snapshot.Load(store)
	require.NoError(t, err)
	now := time.Now()
	nodes := snapshot.BuildNodes(snap, now)

	require.False(t, IsReady(snap, nodes[item.ID()], now))
}
