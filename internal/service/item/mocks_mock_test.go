package item

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
)

// ---------------------------------------------------------------------------
// itemRepoMock
// ---------------------------------------------------------------------------

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListFunc    func(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error)
	CreateFunc  func(ctx context.Context, it *domain.Item) (*domain.Item, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error

	calls struct {
		GetByID []struct{ ID uuid.UUID }
		List    []struct{ Filter domain.ItemFilter }
		Create  []struct{ Item *domain.Item }
		Update  []struct {
			ID    uuid.UUID
			Patch domain.ItemPatch
		}
		Delete []struct{ ID uuid.UUID }
	}
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *itemRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	defer mock.lockGetByID.RUnlock()
	return mock.calls.GetByID
}

func (mock *itemRepoMock) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error) {
	if mock.ListFunc == nil {
		panic("itemRepoMock.ListFunc: method is nil but itemRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Filter domain.ItemFilter }{Filter: filter})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *itemRepoMock) ListCalls() []struct{ Filter domain.ItemFilter } {
	mock.lockList.RLock()
	defer mock.lockList.RUnlock()
	return mock.calls.List
}

func (mock *itemRepoMock) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	if mock.CreateFunc == nil {
		panic("itemRepoMock.CreateFunc: method is nil but itemRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Item *domain.Item }{Item: it})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, it)
}

func (mock *itemRepoMock) CreateCalls() []struct{ Item *domain.Item } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *itemRepoMock) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error) {
	if mock.UpdateFunc == nil {
		panic("itemRepoMock.UpdateFunc: method is nil but itemRepo.Update was just called")
	}
	callInfo := struct {
		ID    uuid.UUID
		Patch domain.ItemPatch
	}{ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, patch)
}

func (mock *itemRepoMock) UpdateCalls() []struct {
	ID    uuid.UUID
	Patch domain.ItemPatch
} {
	mock.lockUpdate.RLock()
	defer mock.lockUpdate.RUnlock()
	return mock.calls.Update
}

func (mock *itemRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("itemRepoMock.DeleteFunc: method is nil but itemRepo.Delete was just called")
	}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct{ ID uuid.UUID }{ID: id})
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *itemRepoMock) DeleteCalls() []struct{ ID uuid.UUID } {
	mock.lockDelete.RLock()
	defer mock.lockDelete.RUnlock()
	return mock.calls.Delete
}

// ---------------------------------------------------------------------------
// movementEngineMock
// ---------------------------------------------------------------------------

var _ movementEngine = &movementEngineMock{}

type movementEngineMock struct {
	ApplyMovementFunc func(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error)

	calls struct {
		ApplyMovement []struct{ In stock.MovementInput }
	}
	lockApplyMovement sync.RWMutex
}

func (mock *movementEngineMock) ApplyMovement(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error) {
	if mock.ApplyMovementFunc == nil {
		panic("movementEngineMock.ApplyMovementFunc: method is nil but movementEngine.ApplyMovement was just called")
	}
	mock.lockApplyMovement.Lock()
	mock.calls.ApplyMovement = append(mock.calls.ApplyMovement, struct{ In stock.MovementInput }{In: in})
	mock.lockApplyMovement.Unlock()
	return mock.ApplyMovementFunc(ctx, in)
}

func (mock *movementEngineMock) ApplyMovementCalls() []struct{ In stock.MovementInput } {
	mock.lockApplyMovement.RLock()
	defer mock.lockApplyMovement.RUnlock()
	return mock.calls.ApplyMovement
}

// ---------------------------------------------------------------------------
// txManagerMock / publisherMock
// ---------------------------------------------------------------------------

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	return mock.RunInTxFunc(ctx, fn)
}

func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

var _ publisher = &publisherMock{}

type publisherMock struct {
	mu     sync.Mutex
	events []domain.Event
}

func (mock *publisherMock) Publish(_ context.Context, ev domain.Event) notify.Delivery {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.events = append(mock.events, ev)
	return notify.Delivery{}
}

func (mock *publisherMock) Events() []domain.Event {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]domain.Event(nil), mock.events...)
}
