package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*User, error)
	Create(ctx context.Context, u User) (uuid.UUID, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = "id, organization_id, email, password_hash, first_name, last_name, active, created_at, updated_at"

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.OrgID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("user", id)
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE organization_id = $1 AND email = $2", orgID, email,
	).Scan(&u.ID, &u.OrgID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Active, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u User) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, organization_id, email, password_hash, first_name, last_name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, id, u.OrgID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Active)
	if err != nil {
		if uniqueViolation(err) {
			return uuid.Nil, shared.ErrDuplicate
		}
		return uuid.Nil, err
	}
	return id, nil
}

func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
