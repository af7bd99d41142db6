package production

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// defaultStations are seeded per organization the first time a job is created.
var defaultStations = []Station{
	{Name: "Cam Kesim", Code: "CAM_KESIM", OrderIndex: 1},
	{Name: "Pres", Code: "PRES", OrderIndex: 2},
}

type Service struct {
	repo      Repository
	orderRepo orders.Repository
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, orderRepo orders.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, orderRepo: orderRepo, logger: logger, now: time.Now}
}

// CreateJobFromOrderItem opens a PENDING job sized to the item quantity.
// The default stations are ensured first so steps can be recorded right away.
func (s *Service) CreateJobFromOrderItem(ctx context.Context, tenant shared.Tenant, req CreateJobRequest) (*Job, error) {
	item, err := s.orderRepo.GetItem(ctx, req.OrderItemID)
	if err != nil {
		return nil, err
	}

	for _, st := range defaultStations {
		st.OrgID = tenant.OrgID
		if err := s.repo.EnsureStation(ctx, st); err != nil {
			return nil, err
		}
	}

	id, err := s.repo.InsertJob(ctx, Job{
		OrgID:            tenant.OrgID,
		OrderItemID:      item.ID,
		QuantityRequired: item.Quantity,
		QuantityProduced: 0,
		Status:           JobStatusPending,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetJob(ctx, id)
}

// RecordStep appends a station log and advances the job counters. The status
// is recomputed from the new produced total; it never moves backwards because
// quantities are strictly positive.
func (s *Service) RecordStep(ctx context.Context, tenant shared.Tenant, jobID uuid.UUID, req RecordStepRequest) (*Job, error) {
	if req.Quantity <= 0 {
		return nil, shared.Invalid("step quantity must be positive, got %d", req.Quantity)
	}
	if _, err := s.repo.GetStation(ctx, req.StationID); err != nil {
		return nil, err
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		job, err := tx.GetJobForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		if _, err := tx.InsertLog(ctx, Log{
			OrgID:       tenant.OrgID,
			JobID:       job.ID,
			StationID:   req.StationID,
			UserID:      tenant.UserID,
			Quantity:    req.Quantity,
			Note:        req.Note,
			CompletedAt: s.now().UTC(),
		}); err != nil {
			return err
		}
		produced := job.QuantityProduced + req.Quantity
		return tx.UpdateJobProgress(ctx, job.ID, produced, statusFor(produced, job.QuantityRequired))
	})
	if err != nil {
		return nil, err
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == JobStatusCompleted {
		s.logger.Info("production job completed", "job_id", job.ID, "produced", job.QuantityProduced)
	}
	return job, nil
}

func (s *Service) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	return s.repo.GetJob(ctx, id)
}

func (s *Service) ListJobs(ctx context.Context, tenant shared.Tenant, req ListJobsRequest) ([]Job, shared.Pagination, error) {
	req.Page = req.Page.Normalize()
	jobs, total, err := s.repo.ListJobs(ctx, tenant.OrgID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return jobs, shared.NewPagination(req.Page, total), nil
}

func (s *Service) ListStations(ctx context.Context, tenant shared.Tenant) ([]Station, error) {
	return s.repo.ListStations(ctx, tenant.OrgID)
}
