package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

// UpdateItem applies a metadata patch. Quantity and SKU cannot be patched.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.Item, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	patch := input.Patch
	if patch.Name != nil {
		name := domain.NormalizeName(*patch.Name)
		patch.Name = &name
	}

	item, err := s.items.Update(ctx, input.ItemID, patch)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
	)

	s.bus.Publish(ctx, domain.ItemUpdated{Item: *item})
	return item, nil
}
