package partners

import (
	"time"

	"github.com/google/uuid"
)

// PartnerType classifies the business relationship.
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "CUSTOMER"
	PartnerTypeSupplier PartnerType = "SUPPLIER"
	PartnerTypeBoth     PartnerType = "BOTH"
)

// Partner is a customer, supplier, or both.
type Partner struct {
	ID        uuid.UUID   `json:"id"`
	OrgID     uuid.UUID   `json:"organization_id"`
	Type      PartnerType `json:"type"`
	Name      string      `json:"name"`
	Email     *string     `json:"email,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
