package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camfab-erp/camfab-erp/internal/platform/db"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	GetJob(ctx context.Context, id uuid.UUID) (*Job, error)
	ListJobs(ctx context.Context, orgID uuid.UUID, req ListJobsRequest) ([]Job, int, error)
	InsertJob(ctx context.Context, j Job) (uuid.UUID, error)
	EnsureStation(ctx context.Context, s Station) error
	ListStations(ctx context.Context, orgID uuid.UUID) ([]Station, error)
	GetStation(ctx context.Context, id uuid.UUID) (*Station, error)
}

type TxRepository interface {
	GetJobForUpdate(ctx context.Context, id uuid.UUID) (*Job, error)
	UpdateJobProgress(ctx context.Context, id uuid.UUID, produced int, status JobStatus) error
	InsertLog(ctx context.Context, l Log) (uuid.UUID, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const jobColumns = "id, organization_id, order_item_id, quantity_required, quantity_produced, status, created_at, updated_at"
const logColumns = "id, organization_id, job_id, station_id, user_id, quantity, note, completed_at"
const stationColumns = "id, organization_id, name, code, order_index, created_at"

func scanJob(row pgx.Row, j *Job) error {
	return row.Scan(&j.ID, &j.OrgID, &j.OrderItemID, &j.QuantityRequired, &j.QuantityProduced, &j.Status, &j.CreatedAt, &j.UpdatedAt)
}

func (r *repository) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := scanJob(r.db.QueryRow(ctx, "SELECT "+jobColumns+" FROM production_jobs WHERE id = $1", id), &j)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("production job", id)
		}
		return nil, err
	}
	logs, err := r.logsFor(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	j.Logs = logs
	return &j, nil
}

func (r *repository) GetJobForUpdate(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := scanJob(r.db.QueryRow(ctx, "SELECT "+jobColumns+" FROM production_jobs WHERE id = $1 FOR UPDATE", id), &j)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("production job", id)
		}
		return nil, err
	}
	return &j, nil
}

func (r *repository) logsFor(ctx context.Context, jobID uuid.UUID) ([]Log, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+logColumns+" FROM production_logs WHERE job_id = $1 ORDER BY completed_at, id", jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		var l Log
		if err := rows.Scan(&l.ID, &l.OrgID, &l.JobID, &l.StationID, &l.UserID, &l.Quantity, &l.Note, &l.CompletedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *repository) ListJobs(ctx context.Context, orgID uuid.UUID, req ListJobsRequest) ([]Job, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, *req.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM production_jobs "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM production_jobs %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		jobColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.OrgID, &j.OrderItemID, &j.QuantityRequired, &j.QuantityProduced, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *repository) InsertJob(ctx context.Context, j Job) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO production_jobs
			(id, organization_id, order_item_id, quantity_required, quantity_produced, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, id, j.OrgID, j.OrderItemID, j.QuantityRequired, j.QuantityProduced, j.Status)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) UpdateJobProgress(ctx context.Context, id uuid.UUID, produced int, status JobStatus) error {
	_, err := r.db.Exec(ctx,
		"UPDATE production_jobs SET quantity_produced = $1, status = $2, updated_at = NOW() WHERE id = $3",
		produced, status, id,
	)
	return err
}

func (r *repository) InsertLog(ctx context.Context, l Log) (uuid.UUID, error) {
	id := uuid.New()
	completedAt := l.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO production_logs
			(id, organization_id, job_id, station_id, user_id, quantity, note, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, l.OrgID, l.JobID, l.StationID, l.UserID, l.Quantity, l.Note, completedAt)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) EnsureStation(ctx context.Context, s Station) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO production_stations (id, organization_id, name, code, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (organization_id, code) DO NOTHING
	`, uuid.New(), s.OrgID, s.Name, s.Code, s.OrderIndex)
	return err
}

func (r *repository) ListStations(ctx context.Context, orgID uuid.UUID) ([]Station, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+stationColumns+" FROM production_stations WHERE organization_id = $1 ORDER BY order_index", orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var s Station
		if err := rows.Scan(&s.ID, &s.OrgID, &s.Name, &s.Code, &s.OrderIndex, &s.CreatedAt); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

func (r *repository) GetStation(ctx context.Context, id uuid.UUID) (*Station, error) {
	var s Station
	err := r.db.QueryRow(ctx,
		"SELECT "+stationColumns+" FROM production_stations WHERE id = $1", id,
	).Scan(&s.ID, &s.OrgID, &s.Name, &s.Code, &s.OrderIndex, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("station", id)
		}
		return nil, err
	}
	return &s, nil
}
