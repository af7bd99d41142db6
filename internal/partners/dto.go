package partners

import "github.com/camfab-erp/camfab-erp/internal/shared"

type CreatePartnerRequest struct {
	Type  PartnerType `json:"type" validate:"required,oneof=CUSTOMER SUPPLIER BOTH"`
	Name  string      `json:"name" validate:"required,max=255"`
	Email *string     `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdatePartnerRequest struct {
	Type  *PartnerType `json:"type,omitempty" validate:"omitempty,oneof=CUSTOMER SUPPLIER BOTH"`
	Name  *string      `json:"name,omitempty" validate:"omitempty,max=255"`
	Email *string      `json:"email,omitempty" validate:"omitempty,email"`
}

type ListPartnersRequest struct {
	Search *string
	Page   shared.PageRequest
}
