package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates order lifecycle values. The literals are persisted
// as-is; no case normalization is applied.
type OrderStatus string

const (
	OrderStatusQuote        OrderStatus = "TEKLIF"
	OrderStatusPlaced       OrderStatus = "SIPARIS"
	OrderStatusInProduction OrderStatus = "URETIMDE"
	OrderStatusDelivered    OrderStatus = "TESLIM EDILDI"
)

// Order aggregates line items priced by area. The three amount fields are
// always derived from the item set, never set independently.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	OrgID       uuid.UUID       `json:"organization_id"`
	PartnerID   uuid.UUID       `json:"partner_id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Items       []OrderItem     `json:"items,omitempty"`
}

// OrderItem is one priced row of an order. UnitPrice is copied from the
// product rate at creation time and is not live-linked to the catalog.
type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	OrgID      uuid.UUID       `json:"organization_id"`
	OrderID    uuid.UUID       `json:"order_id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
