package stock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// memStore is an in-memory stand-in for the item table, the ledger and the
// transaction manager. RunInTx holds a single lock for the whole unit and
// restores a snapshot when fn fails, which is enough to model row locking
// and rollback for one item at a time.
type memStore struct {
	txMu sync.Mutex

	mu     sync.Mutex
	items  map[uuid.UUID]domain.Item
	ledger []domain.Transaction
	nextID int64

	failLedger bool
}

type memTxKey struct{}

func newMemStore(items ...domain.Item) *memStore {
	s := &memStore{items: make(map[uuid.UUID]domain.Item)}
	for _, it := range items {
		s.items[it.ID] = it
	}
	return s
}

func (s *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	items := make(map[uuid.UUID]domain.Item, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	ledger := append([]domain.Transaction(nil), s.ledger...)
	nextID := s.nextID
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.items, s.ledger, s.nextID = items, ledger, nextID
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
	}
	return &it, nil
}

func (s *memStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	if ctx.Value(memTxKey{}) == nil {
		return nil, fmt.Errorf("get for update outside transaction")
	}
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateQuantity(_ context.Context, id uuid.UUID, delta int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || it.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	it.Quantity += delta
	it.UpdatedAt = time.Now()
	s.items[id] = it
	return &it, nil
}

func (s *memStore) Create(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLedger {
		return nil, fmt.Errorf("ledger insert: disk full")
	}
	s.nextID++
	out := *tx
	out.ID = s.nextID
	out.CreatedAt = time.Now()
	s.ledger = append(s.ledger, out)
	return &out, nil
}

func (s *memStore) List(_ context.Context, f domain.TransactionFilter) ([]domain.Transaction, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for i := len(s.ledger) - 1; i >= 0; i-- {
		t := s.ledger[i]
		if f.ItemID != nil && t.ItemID != *f.ItemID {
			continue
		}
		if f.Kind != nil && t.Kind != *f.Kind {
			continue
		}
		out = append(out, t)
	}
	return out, len(out), nil
}

func (s *memStore) NetQuantity(_ context.Context, itemID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	net := 0
	for _, t := range s.ledger {
		if t.ItemID == itemID {
			net += t.Kind.Delta(t.Quantity)
		}
	}
	return net, nil
}

func (s *memStore) item(id uuid.UUID) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id]
}

func (s *memStore) ledgerLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledger)
}
