package stock

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

// RecordMovement is the caller-facing entry point: it guards against
// replayed requests, applies the movement, and after commit publishes the
// derived events exactly once. A rejected movement publishes nothing.
func (s *Service) RecordMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if len(in.IdempotencyKey) > MaxIdempotencyKeyLen {
		return nil, domain.NewValidationError("idempotency_key", "max 128 characters")
	}

	key := ""
	if s.idem != nil && in.IdempotencyKey != "" {
		key = fmt.Sprintf("movement:%s:%s", userID, in.IdempotencyKey)
		reserved, err := s.idem.Reserve(ctx, key)
		switch {
		case err != nil:
			// Fail open: a missing cache must not block stock movements.
			s.log.WarnContext(ctx, "idempotency reserve failed", slog.String("error", err.Error()))
			key = ""
		case !reserved:
			return nil, fmt.Errorf("idempotency key %q: %w", in.IdempotencyKey, domain.ErrDuplicateRequest)
		}
	}

	result, err := s.ApplyMovement(ctx, in)
	if err != nil {
		if key != "" {
			if relErr := s.idem.Release(ctx, key); relErr != nil {
				s.log.WarnContext(ctx, "idempotency release failed", slog.String("error", relErr.Error()))
			}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "stock movement applied",
		slog.String("user_id", userID.String()),
		slog.String("item_id", result.Item.ID.String()),
		slog.String("type", result.Transaction.Kind.String()),
		slog.Int("quantity", result.Transaction.Quantity),
		slog.Int("new_quantity", result.Item.Quantity),
		slog.Bool("low_stock", result.IsLowStock),
		slog.Int64("transaction_id", result.Transaction.ID),
	)

	for _, ev := range result.Events() {
		s.bus.Publish(ctx, ev)
	}

	return result, nil
}
