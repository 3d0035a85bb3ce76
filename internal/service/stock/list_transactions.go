package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// ListTransactions returns ledger entries newest first.
func (s *Service) ListTransactions(ctx context.Context, in ListTransactionsInput) (*TransactionList, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	limit := in.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	txs, total, err := s.ledger.List(ctx, domain.TransactionFilter{
		ItemID: in.ItemID,
		Kind:   in.Kind,
		Limit:  limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &TransactionList{Transactions: txs, Total: total}, nil
}

// AuditItem compares an item's stored quantity with its ledger sum.
// Both reads run in one transaction so they observe the same snapshot
// of the item row.
func (s *Service) AuditItem(ctx context.Context, itemID uuid.UUID) (*Audit, error) {
	var audit *Audit
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetForUpdate(txCtx, itemID)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		net, err := s.ledger.NetQuantity(txCtx, itemID)
		if err != nil {
			return fmt.Errorf("ledger sum: %w", err)
		}
		audit = &Audit{ItemID: itemID, Quantity: item.Quantity, LedgerNet: net}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return audit, nil
}
