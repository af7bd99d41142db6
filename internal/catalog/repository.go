package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, orgID uuid.UUID, req ListProductsRequest) ([]Product, int, error)
	Create(ctx context.Context, p Product) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, upd UpdateProductRequest) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = "id, organization_id, name, base_price_sqm, created_at, updated_at"

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id,
	).Scan(&p.ID, &p.OrgID, &p.Name, &p.BasePriceSqm, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("product", id)
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, orgID uuid.UUID, req ListProductsRequest) ([]Product, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.Search != nil {
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args)+1)
		args = append(args, "%"+*req.Search+"%")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products %s ORDER BY name LIMIT $%d OFFSET $%d",
		productColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Name, &p.BasePriceSqm, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, p Product) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, organization_id, name, base_price_sqm, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, id, p.OrgID, p.Name, p.BasePriceSqm)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, upd UpdateProductRequest) error {
	query := "UPDATE products SET updated_at = NOW()"
	var args []interface{}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		query += fmt.Sprintf(", name = $%d", len(args))
	}
	if upd.BasePriceSqm != nil {
		args = append(args, *upd.BasePriceSqm)
		query += fmt.Sprintf(", base_price_sqm = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	_, err := r.pool.Exec(ctx, query, args...)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
