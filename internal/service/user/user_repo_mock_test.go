package user

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	ListFunc           func(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	CreateFunc         func(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRoleFunc     func(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, id uuid.UUID, hash string) (*domain.User, error)

	calls struct {
		GetByID    []struct{ ID uuid.UUID }
		GetByEmail []struct{ Email string }
		List       []struct {
			Limit  int
			Offset int
		}
		Create     []struct{ U *domain.User }
		UpdateRole []struct {
			ID   uuid.UUID
			Role domain.UserRole
		}
		UpdatePassword []struct {
			ID   uuid.UUID
			Hash string
		}
	}
	lockGetByID        sync.RWMutex
	lockGetByEmail     sync.RWMutex
	lockList           sync.RWMutex
	lockCreate         sync.RWMutex
	lockUpdateRole     sync.RWMutex
	lockUpdatePassword sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, struct{ ID uuid.UUID }{ID: id})
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *userRepoMock) GetByIDCalls() []struct{ ID uuid.UUID } {
	mock.lockGetByID.RLock()
	defer mock.lockGetByID.RUnlock()
	return mock.calls.GetByID
}

func (mock *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if mock.GetByEmailFunc == nil {
		panic("userRepoMock.GetByEmailFunc: method is nil but userRepo.GetByEmail was just called")
	}
	mock.lockGetByEmail.Lock()
	mock.calls.GetByEmail = append(mock.calls.GetByEmail, struct{ Email string }{Email: email})
	mock.lockGetByEmail.Unlock()
	return mock.GetByEmailFunc(ctx, email)
}

func (mock *userRepoMock) GetByEmailCalls() []struct{ Email string } {
	mock.lockGetByEmail.RLock()
	defer mock.lockGetByEmail.RUnlock()
	return mock.calls.GetByEmail
}

func (mock *userRepoMock) List(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	if mock.ListFunc == nil {
		panic("userRepoMock.ListFunc: method is nil but userRepo.List was just called")
	}
	callInfo := struct {
		Limit  int
		Offset int
	}{Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, limit, offset)
}

func (mock *userRepoMock) ListCalls() []struct {
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	defer mock.lockList.RUnlock()
	return mock.calls.List
}

func (mock *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if mock.CreateFunc == nil {
		panic("userRepoMock.CreateFunc: method is nil but userRepo.Create was just called")
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, struct{ U *domain.User }{U: u})
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, u)
}

func (mock *userRepoMock) CreateCalls() []struct{ U *domain.User } {
	mock.lockCreate.RLock()
	defer mock.lockCreate.RUnlock()
	return mock.calls.Create
}

func (mock *userRepoMock) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if mock.UpdateRoleFunc == nil {
		panic("userRepoMock.UpdateRoleFunc: method is nil but userRepo.UpdateRole was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		Role domain.UserRole
	}{ID: id, Role: role}
	mock.lockUpdateRole.Lock()
	mock.calls.UpdateRole = append(mock.calls.UpdateRole, callInfo)
	mock.lockUpdateRole.Unlock()
	return mock.UpdateRoleFunc(ctx, id, role)
}

func (mock *userRepoMock) UpdateRoleCalls() []struct {
	ID   uuid.UUID
	Role domain.UserRole
} {
	mock.lockUpdateRole.RLock()
	defer mock.lockUpdateRole.RUnlock()
	return mock.calls.UpdateRole
}

func (mock *userRepoMock) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (*domain.User, error) {
	if mock.UpdatePasswordFunc == nil {
		panic("userRepoMock.UpdatePasswordFunc: method is nil but userRepo.UpdatePassword was just called")
	}
	callInfo := struct {
		ID   uuid.UUID
		Hash string
	}{ID: id, Hash: hash}
	mock.lockUpdatePassword.Lock()
	mock.calls.UpdatePassword = append(mock.calls.UpdatePassword, callInfo)
	mock.lockUpdatePassword.Unlock()
	return mock.UpdatePasswordFunc(ctx, id, hash)
}

func (mock *userRepoMock) UpdatePasswordCalls() []struct {
	ID   uuid.UUID
	Hash string
} {
	mock.lockUpdatePassword.RLock()
	defer mock.lockUpdatePassword.RUnlock()
	return mock.calls.UpdatePassword
}

var _ txManager = &txManagerMock{}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		return fn(ctx)
	}
	return mock.RunInTxFunc(ctx, fn)
}
