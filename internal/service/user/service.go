package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) (*domain.User, error)
}

// txManager defines the transaction manager interface needed by user service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements user management. Everything except GetProfile and
// BootstrapManager requires the manager role.
type Service struct {
	log        *slog.Logger
	users      userRepo
	tx         txManager
	bcryptCost int
}

// NewService creates a new user service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tx txManager,
	bcryptCost int,
) *Service {
	return &Service{
		log:        logger.With("service", "user"),
		users:      users,
		tx:         tx,
		bcryptCost: bcryptCost,
	}
}
