package item

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// GetItem returns a single item.
func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ItemList is a page of items.
type ItemList struct {
	Items []domain.Item
	Total int
}

// ListItems returns items ordered by name.
func (s *Service) ListItems(ctx context.Context, input ListItemsInput) (*ItemList, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	var search *string
	if input.Search != nil {
		if q := domain.NormalizeName(*input.Search); q != "" {
			search = &q
		}
	}

	items, total, err := s.items.List(ctx, domain.ItemFilter{
		Search:       search,
		LowStockOnly: input.LowStockOnly,
		Limit:        limit,
		Offset:       input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return &ItemList{Items: items, Total: total}, nil
}
