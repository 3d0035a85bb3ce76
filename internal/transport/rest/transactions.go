package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
	"github.com/heartmarshall/inventory-backend/internal/notify"
	"github.com/heartmarshall/inventory-backend/internal/service/stock"
)

// IdempotencyKeyHeader lets clients retry POST /transactions safely.
const IdempotencyKeyHeader = "Idempotency-Key"

type stockService interface {
	RecordMovement(ctx context.Context, in stock.MovementInput) (*stock.MovementResult, error)
	ListTransactions(ctx context.Context, in stock.ListTransactionsInput) (*stock.TransactionList, error)
	AuditItem(ctx context.Context, itemID uuid.UUID) (*stock.Audit, error)
}

// TransactionHandler serves stock movements and the ledger.
type TransactionHandler struct {
	svc stockService
	log *slog.Logger
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(svc stockService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, log: logger.With("handler", "transaction")}
}

type movementRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Type     string    `json:"type"`
	Quantity int       `json:"quantity"`
}

type movementResponse struct {
	Transaction notify.TransactionPayload `json:"transaction"`
	Item        notify.ItemPayload        `json:"item"`
}

type transactionListResponse struct {
	Transactions []notify.TransactionPayload `json:"transactions"`
	Total        int                         `json:"total"`
}

type auditResponse struct {
	ItemID     uuid.UUID `json:"item_id"`
	Quantity   int       `json:"quantity"`
	LedgerNet  int       `json:"ledger_net"`
	Consistent bool      `json:"consistent"`
}

// Create handles POST /transactions.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if req.ItemID == uuid.Nil {
		writeDomainError(w, r, h.log, domain.NewValidationError("item_id", "required"))
		return
	}

	res, err := h.svc.RecordMovement(r.Context(), stock.MovementInput{
		ItemID:         req.ItemID,
		Kind:           domain.MovementKind(req.Type),
		Quantity:       req.Quantity,
		IdempotencyKey: r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, movementResponse{
		Transaction: notify.NewTransactionPayload(res.Transaction),
		Item:        notify.NewItemPayload(res.Item),
	})
}

// List handles GET /transactions?item_id=&type=&limit=&offset=, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	var in stock.ListTransactionsInput

	if v := r.URL.Query().Get("item_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeDomainError(w, r, h.log, domain.NewValidationError("item_id", "must be a UUID"))
			return
		}
		in.ItemID = &id
	}
	if v := r.URL.Query().Get("type"); v != "" {
		kind := domain.MovementKind(v)
		in.Kind = &kind
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

	list, err := h.svc.ListTransactions(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := transactionListResponse{
		Transactions: make([]notify.TransactionPayload, 0, len(list.Transactions)),
		Total:        list.Total,
	}
	for _, t := range list.Transactions {
		resp.Transactions = append(resp.Transactions, notify.NewTransactionPayload(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Audit handles GET /items/{id}/audit.
func (h *TransactionHandler) Audit(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	a, err := h.svc.AuditItem(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, auditResponse{
		ItemID:     a.ItemID,
		Quantity:   a.Quantity,
		LedgerNet:  a.LedgerNet,
		Consistent: a.Consistent(),
	})
}
