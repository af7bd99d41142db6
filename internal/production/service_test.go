package production

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type fakeItemRepo struct {
	items map[uuid.UUID]orders.OrderItem
}

func (f *fakeItemRepo) GetItem(_ context.Context, id uuid.UUID) (*orders.OrderItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, shared.NotFound("order item", id)
	}
	return &item, nil
}

func (f *fakeItemRepo) WithTx(ctx context.Context, fn func(context.Context, orders.Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeItemRepo) Get(context.Context, uuid.UUID) (*orders.Order, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeItemRepo) List(context.Context, uuid.UUID, orders.ListOrdersRequest) ([]orders.Order, int, error) {
	return nil, 0, nil
}

func (f *fakeItemRepo) Insert(context.Context, orders.Order) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeItemRepo) Update(context.Context, uuid.UUID, orders.OrderUpdate) error { return nil }

func (f *fakeItemRepo) Delete(context.Context, uuid.UUID) (bool, error) { return false, nil }

func (f *fakeItemRepo) InsertItem(context.Context, orders.OrderItem) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (f *fakeItemRepo) DeleteItems(context.Context, uuid.UUID) error { return nil }

type fakeProductionRepo struct {
	jobs     map[uuid.UUID]Job
	logs     map[uuid.UUID]Log
	stations map[string]Station
}

func newFakeProductionRepo() *fakeProductionRepo {
	return &fakeProductionRepo{
		jobs:     make(map[uuid.UUID]Job),
		logs:     make(map[uuid.UUID]Log),
		stations: make(map[string]Station),
	}
}

func (f *fakeProductionRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, f)
}

func (f *fakeProductionRepo) GetJob(_ context.Context, id uuid.UUID) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, shared.NotFound("production job", id)
	}
	for _, l := range f.logs {
		if l.JobID == id {
			j.Logs = append(j.Logs, l)
		}
	}
	return &j, nil
}

func (f *fakeProductionRepo) GetJobForUpdate(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, shared.NotFound("production job", id)
	}
	return &j, nil
}

func (f *fakeProductionRepo) ListJobs(_ context.Context, orgID uuid.UUID, req ListJobsRequest) ([]Job, int, error) {
	var result []Job
	for _, j := range f.jobs {
		if j.OrgID != orgID {
			continue
		}
		if req.Status != nil && j.Status != *req.Status {
			continue
		}
		result = append(result, j)
	}
	return result, len(result), nil
}

func (f *fakeProductionRepo) InsertJob(_ context.Context, j Job) (uuid.UUID, error) {
	j.ID = uuid.New()
	f.jobs[j.ID] = j
	return j.ID, nil
}

func (f *fakeProductionRepo) UpdateJobProgress(_ context.Context, id uuid.UUID, produced int, status JobStatus) error {
	j, ok := f.jobs[id]
	if !ok {
		return shared.NotFound("production job", id)
	}
	j.QuantityProduced = produced
	j.Status = status
	f.jobs[id] = j
	return nil
}

func (f *fakeProductionRepo) InsertLog(_ context.Context, l Log) (uuid.UUID, error) {
	l.ID = uuid.New()
	f.logs[l.ID] = l
	return l.ID, nil
}

func (f *fakeProductionRepo) EnsureStation(_ context.Context, s Station) error {
	if _, ok := f.stations[s.Code]; ok {
		return nil
	}
	s.ID = uuid.New()
	f.stations[s.Code] = s
	return nil
}

func (f *fakeProductionRepo) ListStations(_ context.Context, _ uuid.UUID) ([]Station, error) {
	var result []Station
	for _, s := range f.stations {
		result = append(result, s)
	}
	return result, nil
}

func (f *fakeProductionRepo) GetStation(_ context.Context, id uuid.UUID) (*Station, error) {
	for _, s := range f.stations {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, shared.NotFound("station", id)
}

func setupProduction(t *testing.T, quantity int) (*Service, *fakeProductionRepo, shared.Tenant, *Job, uuid.UUID) {
	t.Helper()
	tenant := shared.Tenant{OrgID: uuid.New(), UserID: uuid.New()}

	itemID := uuid.New()
	itemRepo := &fakeItemRepo{items: map[uuid.UUID]orders.OrderItem{
		itemID: {
			ID:         itemID,
			OrgID:      tenant.OrgID,
			ProductID:  uuid.New(),
			Width:      1000,
			Height:     2000,
			Quantity:   quantity,
			UnitPrice:  decimal.New(100, 0),
			TotalPrice: decimal.New(600, 0),
		},
	}}

	repo := newFakeProductionRepo()
	service := NewService(repo, itemRepo, slog.New(slog.DiscardHandler))
	service.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }

	job, err := service.CreateJobFromOrderItem(context.Background(), tenant, CreateJobRequest{OrderItemID: itemID})
	require.NoError(t, err)

	var stationID uuid.UUID
	for _, s := range repo.stations {
		if s.Code == "CAM_KESIM" {
			stationID = s.ID
		}
	}
	require.NotEqual(t, uuid.Nil, stationID)

	return service, repo, tenant, job, stationID
}

func TestCreateJobFromOrderItem(t *testing.T) {
	service, repo, tenant, job, _ := setupProduction(t, 10)

	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 10, job.QuantityRequired)
	assert.Equal(t, 0, job.QuantityProduced)

	t.Run("seeds default stations once", func(t *testing.T) {
		stations, err := service.ListStations(context.Background(), tenant)
		require.NoError(t, err)
		require.Len(t, stations, 2)
		codes := map[string]int{}
		for _, s := range stations {
			codes[s.Code] = s.OrderIndex
		}
		assert.Equal(t, 1, codes["CAM_KESIM"])
		assert.Equal(t, 2, codes["PRES"])
	})

	t.Run("unknown order item", func(t *testing.T) {
		_, err := service.CreateJobFromOrderItem(context.Background(), tenant, CreateJobRequest{OrderItemID: uuid.New()})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Len(t, repo.jobs, 1)
	})
}

func TestRecordStep(t *testing.T) {
	t.Run("partial then completing step", func(t *testing.T) {
		service, _, tenant, job, stationID := setupProduction(t, 10)

		after, err := service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: stationID,
			Quantity:  4,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, after.QuantityProduced)
		assert.Equal(t, JobStatusInProgress, after.Status)

		after, err = service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: stationID,
			Quantity:  6,
		})
		require.NoError(t, err)
		assert.Equal(t, 10, after.QuantityProduced)
		assert.Equal(t, JobStatusCompleted, after.Status)
		assert.Len(t, after.Logs, 2)
	})

	t.Run("overproduction stays completed", func(t *testing.T) {
		service, _, tenant, job, stationID := setupProduction(t, 2)

		after, err := service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: stationID,
			Quantity:  5,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, after.QuantityProduced)
		assert.Equal(t, JobStatusCompleted, after.Status)
	})

	t.Run("log carries the acting user", func(t *testing.T) {
		service, repo, tenant, job, stationID := setupProduction(t, 10)

		_, err := service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: stationID,
			Quantity:  1,
		})
		require.NoError(t, err)
		require.Len(t, repo.logs, 1)
		for _, l := range repo.logs {
			assert.Equal(t, tenant.UserID, l.UserID)
			assert.Equal(t, stationID, l.StationID)
			assert.False(t, l.CompletedAt.IsZero())
		}
	})

	t.Run("non positive quantity rejected", func(t *testing.T) {
		service, repo, tenant, job, stationID := setupProduction(t, 10)

		_, err := service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: stationID,
			Quantity:  0,
		})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		assert.Empty(t, repo.logs)
	})

	t.Run("unknown job", func(t *testing.T) {
		service, _, tenant, _, stationID := setupProduction(t, 10)

		_, err := service.RecordStep(context.Background(), tenant, uuid.New(), RecordStepRequest{
			StationID: stationID,
			Quantity:  1,
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("unknown station", func(t *testing.T) {
		service, repo, tenant, job, _ := setupProduction(t, 10)

		_, err := service.RecordStep(context.Background(), tenant, job.ID, RecordStepRequest{
			StationID: uuid.New(),
			Quantity:  1,
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		assert.Empty(t, repo.logs)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, JobStatusPending, statusFor(0, 10))
	assert.Equal(t, JobStatusInProgress, statusFor(1, 10))
	assert.Equal(t, JobStatusInProgress, statusFor(9, 10))
	assert.Equal(t, JobStatusCompleted, statusFor(10, 10))
	assert.Equal(t, JobStatusCompleted, statusFor(11, 10))
}
