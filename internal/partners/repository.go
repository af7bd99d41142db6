package partners

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

const uniqueViolation = "23505"

type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Partner, error)
	List(ctx context.Context, orgID uuid.UUID, req ListPartnersRequest) ([]Partner, int, error)
	Create(ctx context.Context, p Partner) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, upd UpdatePartnerRequest) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const partnerColumns = "id, organization_id, type, name, email, created_at, updated_at"

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Partner, error) {
	var p Partner
	err := r.pool.QueryRow(ctx,
		"SELECT "+partnerColumns+" FROM partners WHERE id = $1", id,
	).Scan(&p.ID, &p.OrgID, &p.Type, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("partner", id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, orgID uuid.UUID, req ListPartnersRequest) ([]Partner, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.Search != nil {
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM partners "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM partners %s ORDER BY name LIMIT $%d OFFSET $%d",
		partnerColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var partners []Partner
	for rows.Next() {
		var p Partner
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Type, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		partners = append(partners, p)
	}
	return partners, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Partner) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO partners (id, organization_id, type, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, id, p.OrgID, p.Type, p.Name, p.Email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, fmt.Errorf("%w: partner email already in use", shared.ErrDuplicate)
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, upd UpdatePartnerRequest) error {
	query := "UPDATE partners SET updated_at = NOW()"
	var args []interface{}
	if upd.Type != nil {
		args = append(args, *upd.Type)
		query += fmt.Sprintf(", type = $%d", len(args))
	}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		query += fmt.Sprintf(", name = $%d", len(args))
	}
	if upd.Email != nil {
		args = append(args, *upd.Email)
		query += fmt.Sprintf(", email = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	_, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: partner email already in use", shared.ErrDuplicate)
		}
	}
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM partners WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
