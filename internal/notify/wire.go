package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/inventory-backend/internal/domain"
)

// Envelope is the wire form of every event: {"type": "...", "data": {...}}.
type Envelope struct {
	Type domain.EventType `json:"type"`
	Data any              `json:"data"`
}

// ItemPayload is the full item representation carried by item events.
type ItemPayload struct {
	ID                uuid.UUID `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	Price             *float64  `json:"price"`
	IsLowStock        bool      `json:"is_low_stock"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StockPayload is the compact item_updated body sent after a movement.
// transaction_id orders updates for one item.
type StockPayload struct {
	ID            uuid.UUID `json:"id"`
	SKU           string    `json:"sku"`
	Quantity      int       `json:"quantity"`
	IsLowStock    bool      `json:"is_low_stock"`
	TransactionID int64     `json:"transaction_id"`
}

// TransactionPayload is the transaction_created body.
type TransactionPayload struct {
	ID        int64     `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	UserID    uuid.UUID `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// LowStockPayload is the low_stock_alert body.
type LowStockPayload struct {
	ItemID        uuid.UUID `json:"item_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	Threshold     int       `json:"threshold"`
	Message       string    `json:"message"`
	TransactionID int64     `json:"transaction_id"`
}

// DeletedPayload is the item_deleted body.
type DeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// Encode renders ev in its wire form.
func Encode(ev domain.Event) ([]byte, error) {
	data, err := payload(ev)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(Envelope{Type: ev.Type(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("notify: encode %s: %w", ev.Type(), err)
	}
	return b, nil
}

func payload(ev domain.Event) (any, error) {
	switch e := ev.(type) {
	case domain.StockChanged:
		return StockPayload{
			ID: e.ItemID, SKU: e.SKU, Quantity: e.NewQuantity,
			IsLowStock: e.IsLowStock, TransactionID: e.TransactionID,
		}, nil
	case domain.TransactionCreated:
		return NewTransactionPayload(e.Transaction), nil
	case domain.LowStockAlert:
		return LowStockPayload{
			ItemID: e.ItemID, SKU: e.SKU, Name: e.Name,
			Quantity: e.Quantity, Threshold: e.Threshold,
			Message:       LowStockMessage(e),
			TransactionID: e.TransactionID,
		}, nil
	case domain.ItemCreated:
		return NewItemPayload(e.Item), nil
	case domain.ItemUpdated:
		return NewItemPayload(e.Item), nil
	case domain.ItemDeleted:
		return DeletedPayload{ID: e.ItemID}, nil
	}
	return nil, fmt.Errorf("notify: unknown event %T", ev)
}

// NewItemPayload converts a domain item, deriving is_low_stock.
func NewItemPayload(it domain.Item) ItemPayload {
	return ItemPayload{
		ID:                it.ID,
		SKU:               it.SKU,
		Name:              it.Name,
		Description:       it.Description,
		Quantity:          it.Quantity,
		LowStockThreshold: it.LowStockThreshold,
		Price:             it.Price,
		IsLowStock:        it.IsLowStock(),
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

// NewTransactionPayload converts a ledger entry.
func NewTransactionPayload(t domain.Transaction) TransactionPayload {
	return TransactionPayload{
		ID:        t.ID,
		ItemID:    t.ItemID,
		UserID:    t.UserID,
		Type:      t.Kind.String(),
		Quantity:  t.Quantity,
		CreatedAt: t.CreatedAt,
	}
}

// LowStockMessage is the human-readable alert text.
func LowStockMessage(e domain.LowStockAlert) string {
	return fmt.Sprintf("Low stock: %s (%s) has %d left, threshold %d", e.Name, e.SKU, e.Quantity, e.Threshold)
}

// Header is the routing information relays need without decoding the body.
type Header struct {
	Type   domain.EventType
	ItemID uuid.UUID
}

// DecodeHeader extracts the event type and the item the event concerns.
func DecodeHeader(msg []byte) (Header, error) {
	var env struct {
		Type domain.EventType           `json:"type"`
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg, &env); err != nil {
		return Header{}, fmt.Errorf("notify: decode header: %w", err)
	}

	field := "id"
	switch env.Type {
	case domain.EventTransactionCreated, domain.EventLowStockAlert:
		field = "item_id"
	}

	h := Header{Type: env.Type}
	if raw, ok := env.Data[field]; ok {
		if err := json.Unmarshal(raw, &h.ItemID); err != nil {
			return Header{}, fmt.Errorf("notify: decode %s: %w", field, err)
		}
	}
	return h, nil
}
