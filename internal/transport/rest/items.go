package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	"github.com/heartmarshall/inventory-backend/internal/service/item"
)

type itemService interface {
	CreateItem(ctx context.Context, input item.CreateItemInput) (*domain.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListItems(ctx context.Context, input item.ListItemsInput) (*item.ItemList, error)
	UpdateItem(ctx context.Context, input item.UpdateItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ItemHandler serves the item catalogue. Item bodies use the same shape as
// item_created / item_updated events.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "item")}
}

type createItemRequest struct {
	SKU               string   `json:"sku"`
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	Quantity          int      `json:"quantity"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
	Price             *float64 `json:"price"`
}

type updateItemRequest struct {
	Name              *string           `json:"name"`
	Description       nullable[string]  `json:"description"`
	LowStockThreshold *int              `json:"low_stock_threshold"`
	Price             nullable[float64] `json:"price"`
}

type itemListResponse struct {
	Items []notify.ItemPayload `json:"items"`
	Total int                  `json:"total"`
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	it, err := h.svc.CreateItem(r.Context(), item.CreateItemInput{
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		Price:             req.Price,
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, notify.NewItemPayload(*it))
}

// List handles GET /items?q=&low_stock=&limit=&offset=.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	in := item.ListItemsInput{}

	if q := r.URL.Query().Get("q"); q != "" {
		in.Search = &q
	}
	if v := r.URL.Query().Get("low_stock"); v != "" {
		low, err := strconv.ParseBool(v)
		if err != nil {
			writeDomainError(w, r, h.log, domain.NewValidationError("low_stock", "must be a boolean"))
			return
		}
		in.LowStockOnly = low
	}
	var err error
	if in.Limit, err = queryInt(r, "limit"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if in.Offset, err = queryInt(r, "offset"); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	list, err := h.svc.ListItems(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := itemListResponse{Items: make([]notify.ItemPayload, 0, len(list.Items)), Total: list.Total}
	for _, it := range list.Items {
		resp.Items = append(resp.Items, notify.NewItemPayload(it))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	it, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, notify.NewItemPayload(*it))
}

// Update handles PATCH and PUT /items/{id}. Only fields present in the body
// change; quantity and sku are not accepted. An explicit null clears
// description or price.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	var req updateItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	it, err := h.svc.UpdateItem(r.Context(), item.UpdateItemInput{
		ItemID: id,
		Patch: domain.ItemPatch{
			Name:              req.Name,
			Description:       req.Description.Value,
			LowStockThreshold: req.LowStockThreshold,
			Price:             req.Price.Value,
			ClearDescription:  req.Description.IsNull(),
			ClearPrice:        req.Price.IsNull(),
		},
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, notify.NewItemPayload(*it))
}

// Delete handles DELETE /items/{id}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteItem(r.Context(), id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
