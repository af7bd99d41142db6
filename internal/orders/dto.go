package orders

import (
	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type CreateOrderItemReq struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Width     int       `json:"width" validate:"required,gt=0"`
	Height    int       `json:"height" validate:"required,gt=0"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	PartnerID uuid.UUID            `json:"partner_id" validate:"required"`
	Status    OrderStatus          `json:"status" validate:"required,oneof=TEKLIF SIPARIS URETIMDE 'TESLIM EDILDI'"`
	Items     []CreateOrderItemReq `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest patches order fields explicitly; a non-nil Items slice
// replaces the full item set (wholesale, never a partial patch).
type UpdateOrderRequest struct {
	PartnerID *uuid.UUID            `json:"partner_id,omitempty"`
	Status    *OrderStatus          `json:"status,omitempty" validate:"omitempty,oneof=TEKLIF SIPARIS URETIMDE 'TESLIM EDILDI'"`
	Items     *[]CreateOrderItemReq `json:"items,omitempty" validate:"omitempty,min=1,dive"`
}

type ListOrdersRequest struct {
	PartnerID *uuid.UUID
	Status    *OrderStatus
	Page      shared.PageRequest
}
