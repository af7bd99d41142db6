package production

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is derived from produced vs required quantity, never set directly.
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDING"
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	JobStatusCompleted  JobStatus = "COMPLETED"
)

// Station is a fixed stage on the shop floor that panels pass through.
type Station struct {
	ID         uuid.UUID `json:"id"`
	OrgID      uuid.UUID `json:"organization_id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
}

// Job tracks production of a single order item. QuantityProduced only grows.
type Job struct {
	ID               uuid.UUID `json:"id"`
	OrgID            uuid.UUID `json:"organization_id"`
	OrderItemID      uuid.UUID `json:"order_item_id"`
	QuantityRequired int       `json:"quantity_required"`
	QuantityProduced int       `json:"quantity_produced"`
	Status           JobStatus `json:"status"`
	Logs             []Log     `json:"logs,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Log is one immutable completion record at a station.
type Log struct {
	ID          uuid.UUID `json:"id"`
	OrgID       uuid.UUID `json:"organization_id"`
	JobID       uuid.UUID `json:"job_id"`
	StationID   uuid.UUID `json:"station_id"`
	UserID      uuid.UUID `json:"user_id"`
	Quantity    int       `json:"quantity"`
	Note        *string   `json:"note,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// statusFor derives the job status from counters.
func statusFor(produced, required int) JobStatus {
	switch {
	case produced >= required:
		return JobStatusCompleted
	case produced > 0:
		return JobStatusInProgress
	default:
		return JobStatusPending
	}
}
