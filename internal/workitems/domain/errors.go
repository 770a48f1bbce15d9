package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for command-time failures surfaced to the caller,
// matching the teacher's package-level sentinel-error style.
var (
	// ErrItemNotFound is returned when a command references an item id
	// that does not exist in the store.
	ErrItemNotFound = errors.New("item not found")
	// ErrEventNotFound is returned when a command references an event
	// id that does not exist in the store.
	ErrEventNotFound = errors.New("event not found")
	// ErrAlreadyFinished is returned when a command attempts to mutate
	// a finished item in a way that is not permitted post-finish.
	ErrAlreadyFinished = errors.New("item already finished")
)

// DanglingReferenceError is raised at load time (C1) when a stored
// reference from one record to another does not resolve. Fatal to the
// snapshot build.
type DanglingReferenceError struct {
	From uuid.UUID
	To   uuid.UUID
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: %s refers to missing %s", e.From, e.To)
}

// PositionNotFoundError is raised when a ParentItemWithExistingItem
// command names a `before` sibling absent from the parent's children.
type PositionNotFoundError struct {
	Parent uuid.UUID
	Before uuid.UUID
}

func (e *PositionNotFoundError) Error() string {
	return fmt.Sprintf("position not found: %s is not a child of %s", e.Before, e.Parent)
}

// StoreMismatchError is raised by the read-after-write assertion every
// command ends with (§4.8): the persisted record did not equal the
// intended value. Fatal; the command loop aborts.
type StoreMismatchError struct {
	ItemID uuid.UUID
	Reason string
}

func (e *StoreMismatchError) Error() string {
	return fmt.Sprintf("store mismatch on %s: %s", e.ItemID, e.Reason)
}

// CycleGuardTrippedError is internal: a traversal detected a revisit
// and terminated early. Logged only; the traversal still returns a
// partial result, so callers are not expected to treat this as fatal.
type CycleGuardTrippedError struct {
	ItemID uuid.UUID
}

func (e *CycleGuardTrippedError) Error() string {
	return fmt.Sprintf("cycle guard tripped at %s", e.ItemID)
}
