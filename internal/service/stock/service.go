// Package stock is the stock-mutation engine: it applies inbound and outbound
// movements atomically, keeps the ledger, and hands the resulting events to
// the notification bus.
package stock

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
)

type itemRepo interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, delta int) (*domain.Item, error)
}

type ledgerRepo interface {
	Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, int, error)
	NetQuantity(ctx context.Context, itemID uuid.UUID) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type publisher interface {
	Publish(ctx context.Context, ev domain.Event) notify.Delivery
}

// idempotencyStore remembers request keys for a bounded time.
// Reserve reports false when the key was already taken.
type idempotencyStore interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Service applies stock movements.
type Service struct {
	items  itemRepo
	ledger ledgerRepo
	tx     txManager
	bus    publisher
	idem   idempotencyStore
	log    *slog.Logger
	tracer trace.Tracer
}

// Option configures optional collaborators.
type Option func(*Service)

// WithIdempotency enables Idempotency-Key handling in RecordMovement.
func WithIdempotency(store idempotencyStore) Option {
	return func(s *Service) { s.idem = store }
}

// NewService creates a new stock service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	ledger ledgerRepo,
	tx txManager,
	bus publisher,
	opts ...Option,
) *Service {
	s := &Service{
		items:  items,
		ledger: ledger,
		tx:     tx,
		bus:    bus,
		log:    log.With("service", "stock"),
		tracer: otel.Tracer("github.com/heartmarshall/inventory-backend/internal/service/stock"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}
