package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	BasePriceSqm decimal.Decimal `json:"base_price_sqm"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	BasePriceSqm *decimal.Decimal `json:"base_price_sqm,omitempty"`
}

type ListProductsRequest struct {
	Search *string
	Page   shared.PageRequest
}
