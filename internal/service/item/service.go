// Package item manages the catalogue of stock-keeping units. Quantities are
// never written here directly: an initial stock level on create goes through
// the stock engine so it lands in the ledger like any other movement.
package item

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
)

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error)
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type movementEngine interface {
	ApplyMovement(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type publisher interface {
	Publish(ctx context.Context, ev domain.Event) notify.Delivery
}

// Service implements item CRUD.
type Service struct {
	log    *slog.Logger
	items  itemRepo
	engine movementEngine
	tx     txManager
	bus    publisher
}

// NewService creates a new item service instance.
func NewService(
	logger *slog.Logger,
	items itemRepo,
	engine movementEngine,
	tx txManager,
	bus publisher,
) *Service {
	return &Service{
		log:    logger.With("service", "item"),
		items:  items,
		engine: engine,
		tx:     tx,
		bus:    bus,
	}
}
