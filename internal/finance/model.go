package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the ledger polarity of a transaction.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Invert returns the opposite polarity, used to cancel a prior effect exactly.
func (d Direction) Invert() Direction {
	if d == DirectionIn {
		return DirectionOut
	}
	return DirectionIn
}

// Valid reports whether d is one of the enumerated literals.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Account holds a running balance. The balance moves only through
// transaction application and reversal, or an explicit account update.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	OrgID          uuid.UUID       `json:"organization_id"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Transaction is one ledger movement against an account, optionally linked to
// a partner, order, or purchase order.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	OrgID           uuid.UUID       `json:"organization_id"`
	AccountID       uuid.UUID       `json:"account_id"`
	PartnerID       *uuid.UUID      `json:"partner_id,omitempty"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	PurchaseOrderID *uuid.UUID      `json:"purchase_order_id,omitempty"`
	Direction       Direction       `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     *string         `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
