package production

import (
	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type CreateJobRequest struct {
	OrderItemID uuid.UUID `json:"order_item_id" validate:"required"`
}

type RecordStepRequest struct {
	StationID uuid.UUID `json:"station_id" validate:"required"`
	Quantity  int       `json:"quantity"`
	Note      *string   `json:"note,omitempty" validate:"omitempty,max=255"`
}

type ListJobsRequest struct {
	Status *JobStatus
	Page   shared.PageRequest
}
