package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder records materials bought from a supplier. It can be linked
// from outgoing financial transactions.
type PurchaseOrder struct {
	ID         uuid.UUID           `json:"id"`
	OrgID      uuid.UUID           `json:"organization_id"`
	PartnerID  uuid.UUID           `json:"partner_id"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
	Items      []PurchaseOrderItem `json:"items"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type PurchaseOrderItem struct {
	ID              uuid.UUID       `json:"id"`
	OrgID           uuid.UUID       `json:"organization_id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	MaterialName    string          `json:"material_name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CreatedAt       time.Time       `json:"created_at"`
}
