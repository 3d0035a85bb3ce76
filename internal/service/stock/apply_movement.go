package stock

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

// ApplyMovement validates and applies one movement as a single atomic unit:
// the item row is locked, the quantity checked and updated, and the ledger
// entry appended, all in one database transaction. Nothing is published;
// see RecordMovement for the event-dispatching entry point.
//
// Rejections, in check order:
//   - quantity <= 0 or above domain.MaxQuantity -> domain.ErrInvalidQuantity
//   - kind not in / out                          -> domain.ErrInvalidKind
//   - unknown item                               -> domain.ErrItemNotFound
//   - out beyond the quantity                    -> *domain.InsufficientStockError
//   - in past domain.MaxQuantity                 -> domain.ErrInvalidQuantity
//
// Storage failures are returned as *domain.PersistenceError and leave
// nothing applied.
func (s *Service) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "stock.ApplyMovement", trace.WithAttributes(
		attribute.String("item.id", in.ItemID.String()),
		attribute.String("movement.kind", in.Kind.String()),
		attribute.Int("movement.quantity", in.Quantity),
	))
	defer span.End()

	var result *MovementResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetForUpdate(txCtx, in.ItemID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("item %s: %w", in.ItemID, domain.ErrItemNotFound)
			}
			return &domain.PersistenceError{Op: "lock item", Err: err}
		}

		if in.Kind == domain.MovementOut && item.Quantity < in.Quantity {
			return &domain.InsufficientStockError{Available: item.Quantity, Requested: in.Quantity}
		}
		if in.Kind == domain.MovementIn && item.Quantity > domain.MaxQuantity-in.Quantity {
			err := domain.NewValidationError("quantity",
				fmt.Sprintf("item holds %d, at most %d more can be received", item.Quantity, domain.MaxQuantity-item.Quantity))
			err.Cause = domain.ErrInvalidQuantity
			return err
		}
		delta := in.Kind.Delta(in.Quantity)

		updated, err := s.items.UpdateQuantity(txCtx, item.ID, delta)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInsufficientStock):
				return &domain.InsufficientStockError{Available: item.Quantity, Requested: in.Quantity}
			case errors.Is(err, domain.ErrValidation):
				verr := domain.NewValidationError("quantity", "resulting quantity is out of range")
				verr.Cause = domain.ErrInvalidQuantity
				return verr
			}
			return &domain.PersistenceError{Op: "update quantity", Err: err}
		}

		entry, err := s.ledger.Create(txCtx, &domain.Transaction{
			ItemID:   item.ID,
			UserID:   userID,
			Kind:     in.Kind,
			Quantity: in.Quantity,
		})
		if err != nil {
			return &domain.PersistenceError{Op: "append ledger", Err: err}
		}

		result = &MovementResult{
			Transaction: *entry,
			Item:        *updated,
			IsLowStock:  updated.IsLowStock(),
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("item.quantity", result.Item.Quantity),
		attribute.Bool("item.low_stock", result.IsLowStock),
	)
	return result, nil
}

// classify leaves engine rejections as they are and turns everything else
// (begin, commit, cancelled context) into a persistence failure.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrPersistence):
		return err
	}
	return &domain.PersistenceError{Op: "commit movement", Err: err}
}
