package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
	"github.com/heartmarshall/inventory-backend/pkg/ctxutil"
)

// CreateItem inserts a new item. A positive initial quantity is recorded as an
// opening inbound movement in the same transaction, so the item's quantity
// always equals its ledger sum.
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.Item, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	threshold := domain.DefaultLowStockThreshold
	if input.LowStockThreshold != nil {
		threshold = *input.LowStockThreshold
	}

	var (
		item    *domain.Item
		opening *stock.MovementResult
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.items.Create(txCtx, &domain.Item{
			ID:                uuid.New(),
			SKU:               domain.NormalizeSKU(input.SKU),
			Name:              domain.NormalizeName(input.Name),
			Description:       input.Description,
			LowStockThreshold: threshold,
			Price:             input.Price,
		})
		if err != nil {
			return fmt.Errorf("create item: %w", err)
		}
		item = created

		if input.Quantity == 0 {
			return nil
		}

		opening, err = s.engine.ApplyMovement(txCtx, stock.MovementInput{
			ItemID:   created.ID,
			Kind:     domain.MovementIn,
			Quantity: input.Quantity,
		})
		if err != nil {
			return fmt.Errorf("opening stock: %w", err)
		}
		item = &opening.Item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
		slog.String("sku", item.SKU),
		slog.Int("quantity", item.Quantity),
	)

	s.bus.Publish(ctx, domain.ItemCreated{Item: *item})
	if opening != nil {
		for _, ev := range opening.Events() {
			// item_created already carries the opening quantity.
			if _, ok := ev.(domain.StockChanged); ok {
				continue
			}
			s.bus.Publish(ctx, ev)
		}
	}

	return item, nil
}
