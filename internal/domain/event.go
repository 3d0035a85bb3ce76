package domain

import "github.com/google/uuid"

// EventType is the wire name of a notification event.
type EventType string

const (
	EventItemCreated        EventType = "item_created"
	EventItemUpdated        EventType = "item_updated"
	EventItemDeleted        EventType = "item_deleted"
	EventTransactionCreated EventType = "transaction_created"
	EventLowStockAlert      EventType = "low_stock_alert"
)

func (t EventType) String() string { return string(t) }

// Event is a notification fanned out to live subscribers. Events are not persisted.
type Event interface {
	Type() EventType
}

// StockChanged reports the quantity an item holds after a committed movement.
// TransactionID is the ledger entry that produced the quantity. Ledger rows
// for one item are written under its row lock, so their IDs grow in commit
// order; consumers keep the quantity with the highest TransactionID.
type StockChanged struct {
	ItemID        uuid.UUID
	SKU           string
	NewQuantity   int
	IsLowStock    bool
	TransactionID int64
}

func (StockChanged) Type() EventType { return EventItemUpdated }

// TransactionCreated carries a freshly committed ledger entry.
type TransactionCreated struct {
	Transaction Transaction
}

func (TransactionCreated) Type() EventType { return EventTransactionCreated }

// LowStockAlert is raised when a movement leaves an item at or below its threshold.
type LowStockAlert struct {
	ItemID        uuid.UUID
	SKU           string
	Name          string
	Quantity      int
	Threshold     int
	TransactionID int64
}

func (LowStockAlert) Type() EventType { return EventLowStockAlert }

// ItemCreated is raised after an item is created.
type ItemCreated struct {
	Item Item
}

func (ItemCreated) Type() EventType { return EventItemCreated }

// ItemUpdated is raised after item metadata (not quantity) changes.
type ItemUpdated struct {
	Item Item
}

func (ItemUpdated) Type() EventType { return EventItemUpdated }

// ItemDeleted is raised after an item is removed.
type ItemDeleted struct {
	ItemID uuid.UUID
}

func (ItemDeleted) Type() EventType { return EventItemDeleted }
