package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateAccountRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=255"`
	// CurrentBalance allows an explicit balance override, outside the
	// reconciler's bookkeeping. Use with care.
	CurrentBalance *decimal.Decimal `json:"current_balance,omitempty"`
}

type CreateTransactionRequest struct {
	AccountID       uuid.UUID       `json:"account_id" validate:"required"`
	PartnerID       *uuid.UUID      `json:"partner_id,omitempty"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	PurchaseOrderID *uuid.UUID      `json:"purchase_order_id,omitempty"`
	Direction       Direction       `json:"direction" validate:"required,oneof=IN OUT"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description,omitempty" validate:"omitempty,max=255"`
}

// UpdateTransactionRequest patches transaction fields explicitly. Direction,
// amount, links, and even the owning account may change; the reconciler
// reverses the old effect and applies the new one in the same atomic unit.
type UpdateTransactionRequest struct {
	AccountID       *uuid.UUID       `json:"account_id,omitempty"`
	PartnerID       *uuid.UUID       `json:"partner_id,omitempty"`
	OrderID         *uuid.UUID       `json:"order_id,omitempty"`
	PurchaseOrderID *uuid.UUID       `json:"purchase_order_id,omitempty"`
	Direction       *Direction       `json:"direction,omitempty" validate:"omitempty,oneof=IN OUT"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Description     *string          `json:"description,omitempty" validate:"omitempty,max=255"`
}

type ListTransactionsRequest struct {
	AccountID *uuid.UUID
	Direction *Direction
	Page      shared.PageRequest
}

type RecordOrderPaymentRequest struct {
	OrderID     uuid.UUID       `json:"order_id" validate:"required"`
	AccountID   uuid.UUID       `json:"account_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=255"`
}
