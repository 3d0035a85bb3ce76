package item

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

const (
	MaxSKULength         = 64
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
	MaxSearchLength      = 100
	DefaultListLimit     = 50
	MaxListLimit         = 200
)

// CreateItemInput holds the parameters for creating an item.
type CreateItemInput struct {
	SKU               string
	Name              string
	Description       *string
	Quantity          int
	LowStockThreshold *int // nil = domain.DefaultLowStockThreshold
	Price             *float64
}

// Validate checks all fields and collects all errors.
func (i CreateItemInput) Validate() error {
	var errs []domain.FieldError

	sku := domain.NormalizeSKU(i.SKU)
	if sku == "" {
		errs = append(errs, domain.FieldError{Field: "sku", Message: "required"})
	}
	if len(sku) > MaxSKULength {
		errs = append(errs, domain.FieldError{Field: "sku", Message: "max 64 characters"})
	}

	errs = append(errs, validateName(i.Name)...)

	if i.Description != nil && len(*i.Description) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if i.Quantity < 0 {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "must be >= 0"})
	}
	if i.Quantity > domain.MaxQuantity {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: fmt.Sprintf("must be at most %d", domain.MaxQuantity)})
	}
	if i.LowStockThreshold != nil && (*i.LowStockThreshold < 0 || *i.LowStockThreshold > domain.MaxQuantity) {
		errs = append(errs, domain.FieldError{Field: "low_stock_threshold", Message: fmt.Sprintf("must be between 0 and %d", domain.MaxQuantity)})
	}
	if i.Price != nil && *i.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateItemInput holds the parameters for patching an item.
type UpdateItemInput struct {
	ItemID uuid.UUID
	Patch  domain.ItemPatch
}

// Validate checks all fields and collects all errors.
func (i UpdateItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if i.Patch.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Patch.Name != nil {
		errs = append(errs, validateName(*i.Patch.Name)...)
	}
	if i.Patch.Description != nil && len(*i.Patch.Description) > MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}
	if i.Patch.LowStockThreshold != nil && (*i.Patch.LowStockThreshold < 0 || *i.Patch.LowStockThreshold > domain.MaxQuantity) {
		errs = append(errs, domain.FieldError{Field: "low_stock_threshold", Message: fmt.Sprintf("must be between 0 and %d", domain.MaxQuantity)})
	}
	if i.Patch.Price != nil && *i.Patch.Price < 0 {
		errs = append(errs, domain.FieldError{Field: "price", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListItemsInput narrows an item listing.
type ListItemsInput struct {
	Search       *string
	LowStockOnly bool
	Limit        int
	Offset       int
}

// Validate checks all fields and collects all errors.
func (i ListItemsInput) Validate() error {
	var errs []domain.FieldError

	if i.Search != nil && len(*i.Search) > MaxSearchLength {
		errs = append(errs, domain.FieldError{Field: "q", Message: "max 100 characters"})
	}
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateName(raw string) []domain.FieldError {
	name := domain.NormalizeName(raw)
	if name == "" {
		return []domain.FieldError{{Field: "name", Message: "required"}}
	}
	if len(name) > MaxNameLength {
		return []domain.FieldError{{Field: "name", Message: "max 255 characters"}}
	}
	return nil
}
