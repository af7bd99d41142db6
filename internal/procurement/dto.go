package procurement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type CreatePurchaseOrderItemReq struct {
	MaterialName string          `json:"material_name" validate:"required,max=255"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

type CreatePurchaseOrderRequest struct {
	PartnerID uuid.UUID                    `json:"partner_id" validate:"required"`
	Items     []CreatePurchaseOrderItemReq `json:"items" validate:"required,min=1,dive"`
}

type ListPurchaseOrdersRequest struct {
	PartnerID *uuid.UUID
	Page      shared.PageRequest
}
