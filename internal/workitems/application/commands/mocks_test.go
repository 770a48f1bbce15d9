package commands

import (
	"context"
	"time"

	"github.com/donow-app/donow/internal/shared/infrastructure/outbox"
	"github.com/donow-app/donow/internal/workitems/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeItemRepo is an in-memory domain.ItemRepository. A stateful fake
// rather than a testify mock because the command handlers' own
// read-after-write assertion needs FindByID to reflect whatever Save
// last wrote, including for items whose id is generated inside
// Handle.
type fakeItemRepo struct {
	byID map[uuid.UUID]*domain.Item

	saveErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: make(map[uuid.UUID]*domain.Item)}
}

func (f *fakeItemRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Item, error) {
	return f.byID[id], nil
}

func (f *fakeItemRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Item, error) {
	items := make([]*domain.Item, 0, len(f.byID))
	for _, item := range f.byID {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeItemRepo) Save(ctx context.Context, userID uuid.UUID, item *domain.Item) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[item.ID()] = item
	return nil
}

// fakeEventRepo is an in-memory domain.EventRepository, mirroring
// fakeItemRepo.
type fakeEventRepo struct {
	byID map[uuid.UUID]*domain.Event

	saveErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[uuid.UUID]*domain.Event)}
}

func (f *fakeEventRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Event, error) {
	return f.byID[id], nil
}

func (f *fakeEventRepo) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0, len(f.byID))
	for _, ev := range f.byID {
		events = append(events, ev)
	}
	return events, nil
}

func (f *fakeEventRepo) Save(ctx context.Context, userID uuid.UUID, event *domain.Event) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[event.ID] = event
	return nil
}

// mockOutboxRepo is a mock implementation of outbox.Repository.
type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) Save(ctx context.Context, msg *outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	args := m.Called(ctx, id, errMsg, nextRetryAt)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkDead(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *mockOutboxRepo) GetFailed(ctx context.Context, maxRetries, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, maxRetries, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	args := m.Called(ctx, olderThanDays)
	return args.Get(0).(int64), args.Error(1)
}

// mockUnitOfWork is a mock implementation of sharedapp.UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// alwaysCommitUOW wires a mockUnitOfWork so that Begin returns the
// same ctx unchanged and Commit succeeds, the common case for tests
// that only care about the command body.
func alwaysCommitUOW(ctx context.Context) *mockUnitOfWork {
	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(ctx, nil)
	uow.On("Commit", ctx).Return(nil)
	return uow
}
