package stock

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// MovementResult is the outcome of one accepted movement.
type MovementResult struct {
	Transaction domain.Transaction
	Item        domain.Item
	IsLowStock  bool
}

// Events derives the notifications for an accepted movement, in dispatch
// order: the ledger entry, the new quantity, then the low-stock alert if
// the item ended at or below its threshold.
func (r *MovementResult) Events() []domain.Event {
	events := []domain.Event{
		domain.TransactionCreated{Transaction: r.Transaction},
		domain.StockChanged{
			ItemID:        r.Item.ID,
			SKU:           r.Item.SKU,
			NewQuantity:   r.Item.Quantity,
			IsLowStock:    r.IsLowStock,
			TransactionID: r.Transaction.ID,
		},
	}
	if r.IsLowStock {
		events = append(events, domain.LowStockAlert{
			ItemID:        r.Item.ID,
			SKU:           r.Item.SKU,
			Name:          r.Item.Name,
			Quantity:      r.Item.Quantity,
			Threshold:     r.Item.LowStockThreshold,
			TransactionID: r.Transaction.ID,
		})
	}
	return events
}

// TransactionList is a page of ledger entries.
type TransactionList struct {
	Transactions []domain.Transaction
	Total        int
}

// Audit compares an item's stored quantity with the sum of its ledger.
type Audit struct {
	ItemID    uuid.UUID
	Quantity  int
	LedgerNet int
}

// Consistent reports whether the stored quantity equals the ledger sum.
func (a Audit) Consistent() bool { return a.Quantity == a.LedgerNet }
