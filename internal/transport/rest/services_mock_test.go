package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/service/auth"
	"github.com/heartmarshall/inventory-backend/internal/service/item"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
	"github.com/heartmarshall/inventory-backend/internal/service/user"
)

// ---------------------------------------------------------------------------
// stockServiceMock
// ---------------------------------------------------------------------------

var _ stockService = &stockServiceMock{}

type stockServiceMock struct {
	RecordMovementFunc   func(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error)
	ListTransactionsFunc func(ctx context.Context, in stock.ListTransactionsInput) (*stock.TransactionList, error)
	AuditItemFunc        func(ctx context.Context, itemID uuid.UUID) (*stock.Audit, error)

	calls struct {
		RecordMovement []struct {
			Ctx context.Context
			In  stock.MovementInput
		}
		ListTransactions []struct {
			Ctx context.Context
			In  stock.ListTransactionsInput
		}
	}
	lockRecordMovement   sync.RWMutex
	lockListTransactions sync.RWMutex
}

func (mock *stockServiceMock) RecordMovement(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error) {
	if mock.RecordMovementFunc == nil {
		panic("stockServiceMock.RecordMovementFunc: method is nil but stockService.RecordMovement was just called")
	}
	mock.lockRecordMovement.Lock()
	mock.calls.RecordMovement = append(mock.calls.RecordMovement, struct {
		Ctx context.Context
		In  stock.MovementInput
	}{ctx, in})
	mock.lockRecordMovement.Unlock()
	return mock.RecordMovementFunc(ctx, in)
}

func (mock *stockServiceMock) RecordMovementCalls() []struct {
	Ctx context.Context
	In  stock.MovementInput
} {
	mock.lockRecordMovement.RLock()
	defer mock.lockRecordMovement.RUnlock()
	return mock.calls.RecordMovement
}

func (mock *stockServiceMock) ListTransactions(ctx context.Context, in stock.ListTransactionsInput) (*stock.TransactionList, error) {
	if mock.ListTransactionsFunc == nil {
		panic("stockServiceMock.ListTransactionsFunc: method is nil but stockService.ListTransactions was just called")
	}
	mock.lockListTransactions.Lock()
	mock.calls.ListTransactions = append(mock.calls.ListTransactions, struct {
		Ctx context.Context
		In  stock.ListTransactionsInput
	}{ctx, in})
	mock.lockListTransactions.Unlock()
	return mock.ListTransactionsFunc(ctx, in)
}

func (mock *stockServiceMock) ListTransactionsCalls() []struct {
	Ctx context.Context
	In  stock.ListTransactionsInput
} {
	mock.lockListTransactions.RLock()
	defer mock.lockListTransactions.RUnlock()
	return mock.calls.ListTransactions
}

func (mock *stockServiceMock) AuditItem(ctx context.Context, itemID uuid.UUID) (*stock.Audit, error) {
	if mock.AuditItemFunc == nil {
		panic("stockServiceMock.AuditItemFunc: method is nil but stockService.AuditItem was just called")
	}
	return mock.AuditItemFunc(ctx, itemID)
}

// ---------------------------------------------------------------------------
// itemServiceMock
// ---------------------------------------------------------------------------

var _ itemService = &itemServiceMock{}

type itemServiceMock struct {
	CreateItemFunc func(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	GetItemFunc    func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListItemsFunc  func(ctx context.Context, input item.ListItemsInput) (*item.ItemList, error)
	UpdateItemFunc func(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	DeleteItemFunc func(ctx context.Context, id uuid.UUID) error

	calls struct {
		ListItems []struct {
			Ctx   context.Context
			Input item.ListItemsInput
		}
		UpdateItem []struct {
			Ctx   context.Context
			Input item.UpdateItemInput
		}
	}
	lockListItems  sync.RWMutex
	lockUpdateItem sync.RWMutex
}

func (mock *itemServiceMock) CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error) {
	if mock.CreateItemFunc == nil {
		panic("itemServiceMock.CreateItemFunc: method is nil but itemService.CreateItem was just called")
	}
	return mock.CreateItemFunc(ctx, input)
}

func (mock *itemServiceMock) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if mock.GetItemFunc == nil {
		panic("itemServiceMock.GetItemFunc: method is nil but itemService.GetItem was just called")
	}
	return mock.GetItemFunc(ctx, id)
}

func (mock *itemServiceMock) ListItems(ctx context.Context, input item.ListItemsInput) (*item.ItemList, error) {
	if mock.ListItemsFunc == nil {
		panic("itemServiceMock.ListItemsFunc: method is nil but itemService.ListItems was just called")
	}
	mock.lockListItems.Lock()
	mock.calls.ListItems = append(mock.calls.ListItems, struct {
		Ctx   context.Context
		Input item.ListItemsInput
	}{ctx, input})
	mock.lockListItems.Unlock()
	return mock.ListItemsFunc(ctx, input)
}

func (mock *itemServiceMock) ListItemsCalls() []struct {
	Ctx   context.Context
	Input item.ListItemsInput
} {
	mock.lockListItems.RLock()
	defer mock.lockListItems.RUnlock()
	return mock.calls.ListItems
}

func (mock *itemServiceMock) UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error) {
	if mock.UpdateItemFunc == nil {
		panic("itemServiceMock.UpdateItemFunc: method is nil but itemService.UpdateItem was just called")
	}
	mock.lockUpdateItem.Lock()
	mock.calls.UpdateItem = append(mock.calls.UpdateItem, struct {
		Ctx   context.Context
		Input item.UpdateItemInput
	}{ctx, input})
	mock.lockUpdateItem.Unlock()
	return mock.UpdateItemFunc(ctx, input)
}

func (mock *itemServiceMock) UpdateItemCalls() []struct {
	Ctx   context.Context
	Input item.UpdateItemInput
} {
	mock.lockUpdateItem.RLock()
	defer mock.lockUpdateItem.RUnlock()
	return mock.calls.UpdateItem
}

func (mock *itemServiceMock) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteItemFunc == nil {
		panic("itemServiceMock.DeleteItemFunc: method is nil but itemService.DeleteItem was just called")
	}
	return mock.DeleteItemFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// userServiceMock
// ---------------------------------------------------------------------------

var _ userService = &userServiceMock{}

type userServiceMock struct {
	GetProfileFunc  func(ctx context.Context) (*domain.User, error)
	CreateUserFunc  func(ctx context.Context, input user.CreateUserInput) (*domain.User, error)
	SetUserRoleFunc func(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
	ListUsersFunc   func(ctx context.Context, limit, offset int) ([]domain.User, int, error)
}

func (mock *userServiceMock) GetProfile(ctx context.Context) (*domain.User, error) {
	if mock.GetProfileFunc == nil {
		panic("userServiceMock.GetProfileFunc: method is nil but userService.GetProfile was just called")
	}
	return mock.GetProfileFunc(ctx)
}

func (mock *userServiceMock) CreateUser(ctx context.Context, input user.CreateUserInput) (*domain.User, error) {
	if mock.CreateUserFunc == nil {
		panic("userServiceMock.CreateUserFunc: method is nil but userService.CreateUser was just called")
	}
	return mock.CreateUserFunc(ctx, input)
}

func (mock *userServiceMock) SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.SetUserRoleFunc == nil {
		panic("userServiceMock.SetUserRoleFunc: method is nil but userService.SetUserRole was just called")
	}
	return mock.SetUserRoleFunc(ctx, targetUserID, role)
}

func (mock *userServiceMock) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	if mock.ListUsersFunc == nil {
		panic("userServiceMock.ListUsersFunc: method is nil but userService.ListUsers was just called")
	}
	return mock.ListUsersFunc(ctx, limit, offset)
}

// ---------------------------------------------------------------------------
// authServiceMock
// ---------------------------------------------------------------------------

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginFunc func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
}

func (mock *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	return mock.LoginFunc(ctx, input)
}
