package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DefaultLowStockThreshold is applied when an item is created without an explicit threshold.
const DefaultLowStockThreshold = 5

// MaxQuantity is the largest quantity an item can hold or a movement can carry.
// Quantities are stored as INTEGER columns.
const MaxQuantity = math.MaxInt32

// Item is a stock-keeping unit. Quantity is only changed by stock movements.
type Item struct {
	ID                uuid.UUID
	SKU               string
	Name              string
	Description       *string
	Quantity          int
	LowStockThreshold int
	Price             *float64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock reports whether the item is at or below its threshold.
func (i *Item) IsLowStock() bool {
	return IsLowStock(i.Quantity, i.LowStockThreshold)
}

// IsLowStock is the low-stock rule: quantity <= threshold.
// A threshold of 0 alerts only when the item is fully depleted.
func IsLowStock(quantity, threshold int) bool {
	return quantity <= threshold
}

// ItemPatch enumerates the item fields a caller may change after creation.
// A nil field is left untouched. Description and price are optional on the
// item, so they can also be cleared; a Clear flag wins over a value.
// Quantity and SKU are deliberately absent.
type ItemPatch struct {
	Name              *string
	Description       *string
	LowStockThreshold *int
	Price             *float64

	ClearDescription bool
	ClearPrice       bool
}

// IsEmpty returns true if the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.LowStockThreshold == nil && p.Price == nil &&
		!p.ClearDescription && !p.ClearPrice
}

// Apply copies every present field of the patch onto the item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	switch {
	case p.ClearDescription:
		item.Description = nil
	case p.Description != nil:
		item.Description = p.Description
	}
	if p.LowStockThreshold != nil {
		item.LowStockThreshold = *p.LowStockThreshold
	}
	switch {
	case p.ClearPrice:
		item.Price = nil
	case p.Price != nil:
		item.Price = p.Price
	}
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	Search       *string
	LowStockOnly bool
	Limit        int
	Offset       int
}
