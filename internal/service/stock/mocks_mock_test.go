package stock

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
)

// ---------------------------------------------------------------------------
// itemRepoMock
// ---------------------------------------------------------------------------

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	GetForUpdateFunc   func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpdateQuantityFunc func(ctx context.Context, id uuid.UUID, delta int) (*domain.Item, error)

	calls struct {
		GetForUpdate []struct {
			ID uuid.UUID
		}
		UpdateQuantity []struct {
			ID    uuid.UUID
			Delta int
		}
	}
	lockGetForUpdate   sync.RWMutex
	lockUpdateQuantity sync.RWMutex
}

func (mock *itemRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetForUpdateFunc == nil {
		panic("itemRepoMock.GetForUpdateFunc: method is nil but itemRepo.GetForUpdate was just called")
	}
	mock.lockGetForUpdate.Lock()
	mock.calls.GetForUpdate = append(mock.calls.GetForUpdate, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetForUpdate.Unlock()
	return mock.GetForUpdateFunc(ctx, id)
}

func (mock *itemRepoMock) GetForUpdateCalls() []struct{ ID uuid.UUID } {
	mock.lockGetForUpdate.RLock()
	defer mock.lockGetForUpdate.RUnlock()
	return mock.calls.GetForUpdate
}

func (mock *itemRepoMock) UpdateQuantity(ctx context.Context, id uuid.UUID, delta int) (*domain.Item, error) {
	if mock.UpdateQuantityFunc == nil {
		panic("itemRepoMock.UpdateQuantityFunc: method is nil but itemRepo.UpdateQuantity was just called")
	}
	callInfo := struct {
		ID    uuid.UUID
		Delta int
	}{ID: id, Delta: delta}
	mock.lockUpdateQuantity.Lock()
	mock.calls.UpdateQuantity = append(mock.calls.UpdateQuantity, callInfo)
	mock.lockUpdateQuantity.Unlock()
	return mock.UpdateQuantityFunc(ctx, id, delta)
}

func (mock *itemRepoMock) UpdateQuantityCalls() []struct {
	ID    uuid.UUID
	Delta int
} {
	mock.lockUpdateQuantity.RLock()
	defer mock.lockUpdateQuantity.RUnlock()
	return mock.calls.UpdateQuantity
}

// ---------------------------------------------------------------------------
// ledgerRepoMock
// ---------------------------------------------------------------------------

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	CreateFunc      func(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	ListFunc        func(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
	NetQuantityFunc func(ctx context.Context, itemID uuid.UUID) (int, error)

	calls struct {
		Create []struct {
			Tx *domain.Transaction
		}
		List []struct {
			Filter domain.TransactionFilter
		}
		NetQuantity []struct {
			ItemID uuid.UUID
		}
	}
	lockCreate      sync.RWMutex
	lockList        sync.RWMutex
	lockNetQuantity sync.RWMutex
}

func (mock *ledgerRepoMock) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if mock.CreateFunc == nil {
		panic("ledgerRepoMock.CreateFunc: method is nil but ledgerRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ Tx *domain.Transaction }{Tx: tx})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, tx)
}

func (mock *ledgerRepoMock) CreateCalls() []struct{ Tx *domain.Transaction } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *ledgerRepoMock) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int, error) {
	if mock.ListFunc == nil {
		panic("ledgerRepoMock.ListFunc: method is nil but ledgerRepo.List was just called")
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, struct{ Filter domain.TransactionFilter }{Filter: filter})
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *ledgerRepoMock) ListCalls() []struct{ Filter domain.TransactionFilter } {
	mock.lockList.RLock()
	defer mock.lockList.RUnlock()
	return mock.calls.List
}

func (mock *ledgerRepoMock) NetQuantity(ctx context.Context, itemID uuid.UUID) (int, error) {
	if mock.NetQuantityFunc == nil {
		panic("ledgerRepoMock.NetQuantityFunc: method is nil but ledgerRepo.NetQuantity was just called")
	}
	mock.lockNetQuantity.Lock()
	mock.calls.NetQuantity = append(mock.calls.NetQuantity, struct{ ItemID uuid.UUID }{ItemID: itemID})
	mock.lockNetQuantity.Unlock()
	return mock.NetQuantityFunc(ctx, itemID)
}

func (mock *ledgerRepoMock) NetQuantityCalls() []struct{ ItemID uuid.UUID } {
	mock.lockNetQuantity.RLock()
	defer mock.lockNetQuantity.RUnlock()
	return mock.calls.NetQuantity
}

// ---------------------------------------------------------------------------
// txManagerMock
// ---------------------------------------------------------------------------

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls struct {
		RunInTx []struct{}
	}
	lockRunInTx sync.RWMutex
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, struct{}{})
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

func (mock *txManagerMock) RunInTxCalls() []struct{} {
	mock.lockRunInTx.RLock()
	defer mock.lockRunInTx.RUnlock()
	return mock.calls.RunInTx
}

// defaultTxMock runs fn directly, as if inside a transaction.
func defaultTxMock() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

// ---------------------------------------------------------------------------
// publisherMock
// ---------------------------------------------------------------------------

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, ev domain.Event) notify.Delivery

	calls struct {
		Publish []struct {
			Ev domain.Event
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, ev domain.Event) notify.Delivery {
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, struct{ Ev domain.Event }{Ev: ev})
	mock.lockPublish.Unlock()
	if mock.PublishFunc == nil {
		return notify.Delivery{}
	}
	return mock.PublishFunc(ctx, ev)
}

func (mock *publisherMock) PublishCalls() []struct{ Ev domain.Event } {
	mock.lockPublish.RLock()
	defer mock.lockPublish.RUnlock()
	return mock.calls.Publish
}

// ---------------------------------------------------------------------------
// idempotencyStoreMock
// ---------------------------------------------------------------------------

var _ idempotencyStore = &idempotencyStoreMock{}

type idempotencyStoreMock struct {
	ReserveFunc func(ctx context.Context, key string) (bool, error)
	ReleaseFunc func(ctx context.Context, key string) error

	calls struct {
		Reserve []struct {
			Key string
		}
		Release []struct {
			Key string
		}
	}
	lockReserve sync.RWMutex
	lockRelease sync.RWMutex
}

func (mock *idempotencyStoreMock) Reserve(ctx context.Context, key string) (bool, error) {
	if mock.ReserveFunc == nil {
		panic("idempotencyStoreMock.ReserveFunc: method is nil but idempotencyStore.Reserve was just called")
	}
	mock.lockReserve.Lock()
	mock.calls.Reserve = append(mock.calls.Reserve, struct{ Key string }{Key: key})
	mock.lockReserve.Unlock()
	return mock.ReserveFunc(ctx, key)
}

func (mock *idempotencyStoreMock) ReserveCalls() []struct{ Key string } {
	mock.lockReserve.RLock()
	defer mock.lockReserve.RUnlock()
	return mock.calls.Reserve
}

func (mock *idempotencyStoreMock) Release(ctx context.Context, key string) error {
	if mock.ReleaseFunc == nil {
		panic("idempotencyStoreMock.ReleaseFunc: method is nil but idempotencyStore.Release was just called")
	}
	mock.lockRelease.Lock()
	mock.calls.Release = append(mock.calls.Release, struct{ Key string }{Key: key})
	mock.lockRelease.Unlock()
	return mock.ReleaseFunc(ctx, key)
}

func (mock *idempotencyStoreMock) ReleaseCalls() []struct{ Key string } {
	mock.lockRelease.RLock()
	defer mock.lockRelease.RUnlock()
	return mock.calls.Release
}
