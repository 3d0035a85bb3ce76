package domain

import (
	"time"

	"github.com/google/uuid"
)

// MovementKind is the direction of a stock movement.
type MovementKind string

const (
	MovementIn  MovementKind = "in"
	MovementOut MovementKind = "out"
)

func (k MovementKind) String() string { return string(k) }

func (k MovementKind) IsValid() bool {
	switch k {
	case MovementIn, MovementOut:
		return true
	}
	return false
}

// Delta returns the signed quantity change for a movement of this kind.
func (k MovementKind) Delta(quantity int) int {
	if k == MovementOut {
		return -quantity
	}
	return quantity
}

// Transaction is an immutable ledger entry for one accepted movement.
// Quantity is always positive; direction is carried by Kind.
type Transaction struct {
	ID        int64
	ItemID    uuid.UUID
	UserID    uuid.UUID
	Kind      MovementKind
	Quantity  int
	CreatedAt time.Time
}

// TransactionFilter narrows ledger listings.
type TransactionFilter struct {
	ItemID *uuid.UUID
	Kind   *MovementKind
	Limit  int
	Offset int
}
