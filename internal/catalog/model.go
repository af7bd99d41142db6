package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a fabricated glass/panel type priced per square metre.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	OrgID        uuid.UUID       `json:"organization_id"`
	Name         string          `json:"name"`
	BasePriceSqm decimal.Decimal `json:"base_price_sqm"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
