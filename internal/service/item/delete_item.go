package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

// DeleteItem removes an item. Items referenced by ledger entries cannot be
// deleted and yield domain.ErrConflict.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", id.String()),
	)

	s.bus.Publish(ctx, domain.ItemDeleted{ItemID: id})
	return nil
}
