package stock

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// MovementInput is a request to move stock in or out of one item.
type MovementInput struct {
	ItemID   uuid.UUID
	Kind     domain.MovementKind
	Quantity int

	// IdempotencyKey is optional; only RecordMovement looks at it.
	IdempotencyKey string
}

// Validate checks quantity, then kind. The first failure wins so a request
// carrying several problems always reports the same one.
func (i MovementInput) Validate() error {
	if i.Quantity <= 0 {
		err := domain.NewValidationError("quantity", "must be greater than zero")
		err.Cause = domain.ErrInvalidQuantity
		return err
	}
	if i.Quantity > domain.MaxQuantity {
		err := domain.NewValidationError("quantity", fmt.Sprintf("must be at most %d", domain.MaxQuantity))
		err.Cause = domain.ErrInvalidQuantity
		return err
	}
	if !i.Kind.IsValid() {
		err := domain.NewValidationError("type", "must be 'in' or 'out'")
		err.Cause = domain.ErrInvalidKind
		return err
	}
	return nil
}

const (
	DefaultListLimit     = 50
	MaxListLimit         = 500
	MaxIdempotencyKeyLen = 128
)

// ListTransactionsInput narrows a ledger listing.
type ListTransactionsInput struct {
	ItemID *uuid.UUID
	Kind   *domain.MovementKind
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListTransactionsInput) Validate() error {
	var errs []domain.FieldError

	if i.Kind != nil && !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be 'in' or 'out'"})
	}
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 500"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
