package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem_StartsUndeclared(t *testing.T) {
	item := NewItem("Buy milk")

	assert.Equal(t, "Buy milk", item.Summary())
	assert.Equal(t, Undeclared, item.Type())
	assert.False(t, item.IsFinished())
	assert.Empty(t, item.Children())
	assert.Empty(t, item.Dependencies())
}

func TestItem_Finish_IsMonotonicAndRaisesEventOnce(t *testing.T) {
	item := NewItem("Ship release")
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	item.Finish(first)
	require.NotNil(t, item.Finished())
	assert.True(t, first.Equal(*item.Finished()))
	require.Len(t, item.DomainEvents(), 1)

	second := first.Add(time.Hour)
	item.Finish(second)
	assert.True(t, second.Equal(*item.Finished()))
	// Finishing again does not raise a second event.
	assert.Len(t, item.DomainEvents(), 1)
}

func TestItem_SetSummary_RejectsWhenFinished(t *testing.T) {
	item := NewItem("Task")
	item.Finish(time.Now().UTC())

	err := item.SetSummary("renamed")
	assert.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestItem_AddChild_AppendsAtTail(t *testing.T) {
	parent := NewItem("Parent")
	childA := uuid.New()
	childB := uuid.New()

	require.NoError(t, parent.AddChild(childA, nil))
	require.NoError(t, parent.AddChild(childB, nil))

	assert.Equal(t, []uuid.UUID{childA, childB}, parent.Children())
}

func TestItem_AddChild_InsertsBeforeSibling(t *testing.T) {
	parent := NewItem("Parent")
	childA := uuid.New()
	childB := uuid.New()
	childC := uuid.New()

	require.NoError(t, parent.AddChild(childA, nil))
	require.NoError(t, parent.AddChild(childB, nil))
	require.NoError(t, parent.AddChild(childC, &childB))

	assert.Equal(t, []uuid.UUID{childA, childC, childB}, parent.Children())
}

func TestItem_AddChild_PositionNotFound(t *testing.T) {
	parent := NewItem("Parent")
	missing := uuid.New()

	err := parent.AddChild(uuid.New(), &missing)
	var posErr *PositionNotFoundError
	assert.ErrorAs(t, err, &posErr)
}

func TestItem_RemoveChild_IsIdempotent(t *testing.T) {
	parent := NewItem("Parent")
	child := uuid.New()
	require.NoError(t, parent.AddChild(child, nil))

	parent.RemoveChild(child)
	parent.RemoveChild(child)

	assert.False(t, parent.HasChild(child))
}

func TestItem_AddDependency_IsIdempotent(t *testing.T) {
	item := NewItem("Task")
	dep := AfterDateTime{At: time.Now().UTC()}

	item.AddDependency(dep)
	item.AddDependency(dep)

	assert.Len(t, item.Dependencies(), 1)
}

func TestItem_AddDependency_NormalizesDuringItem(t *testing.T) {
	item := NewItem("Task")
	target := uuid.New()

	item.AddDependency(DuringItem{ItemID: target})

	require.Len(t, item.Dependencies(), 1)
	_, ok := item.Dependencies()[0].(AfterItem)
	assert.True(t, ok)
}

func TestItem_RemoveDependency_IsIdempotent(t *testing.T) {
	item := NewItem("Task")
	dep := AfterItem{ItemID: uuid.New()}
	item.AddDependency(dep)

	item.RemoveDependency(dep)
	item.RemoveDependency(dep)

	assert.Empty(t, item.Dependencies())
}
