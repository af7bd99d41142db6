package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/platform/db"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// OrderUpdate patches order columns explicitly, field by field.
type OrderUpdate struct {
	PartnerID   *uuid.UUID
	Status      *OrderStatus
	TotalAmount *decimal.Decimal
	TaxAmount   *decimal.Decimal
	GrandTotal  *decimal.Decimal
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, orgID uuid.UUID, req ListOrdersRequest) ([]Order, int, error)
	Insert(ctx context.Context, o Order) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, upd OrderUpdate) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	InsertItem(ctx context.Context, item OrderItem) (uuid.UUID, error)
	DeleteItems(ctx context.Context, orderID uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*OrderItem, error)
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

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = "id, organization_id, partner_id, status, total_amount, tax_amount, grand_total, created_at, updated_at"
const itemColumns = "id, organization_id, order_id, product_id, width, height, quantity, unit_price, total_price, created_at"

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id,
	).Scan(&o.ID, &o.OrgID, &o.PartnerID, &o.Status, &o.TotalAmount, &o.TaxAmount, &o.GrandTotal, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("order", id)
		}
		return nil, err
	}

	items, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) itemsFor(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+itemColumns+" FROM order_items WHERE order_id = $1 ORDER BY created_at, id", orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrgID, &it.OrderID, &it.ProductID, &it.Width, &it.Height, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, orgID uuid.UUID, req ListOrdersRequest) ([]Order, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.PartnerID != nil {
		where += fmt.Sprintf(" AND partner_id = $%d", len(args)+1)
		args = append(args, *req.PartnerID)
	}
	if req.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, *req.Status)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM orders %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		orderColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrgID, &o.PartnerID, &o.Status, &o.TotalAmount, &o.TaxAmount, &o.GrandTotal, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range result {
		items, err := r.itemsFor(ctx, result[i].ID)
		if err != nil {
			return nil, 0, err
		}
		result[i].Items = items
	}
	return result, total, nil
}

func (r *repository) Insert(ctx context.Context, o Order) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, organization_id, partner_id, status, total_amount, tax_amount, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`, id, o.OrgID, o.PartnerID, o.Status, o.TotalAmount, o.TaxAmount, o.GrandTotal)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, upd OrderUpdate) error {
	query := "UPDATE orders SET updated_at = NOW()"
	var args []interface{}
	if upd.PartnerID != nil {
		args = append(args, *upd.PartnerID)
		query += fmt.Sprintf(", partner_id = $%d", len(args))
	}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		query += fmt.Sprintf(", status = $%d", len(args))
	}
	if upd.TotalAmount != nil {
		args = append(args, *upd.TotalAmount)
		query += fmt.Sprintf(", total_amount = $%d", len(args))
	}
	if upd.TaxAmount != nil {
		args = append(args, *upd.TaxAmount)
		query += fmt.Sprintf(", tax_amount = $%d", len(args))
	}
	if upd.GrandTotal != nil {
		args = append(args, *upd.GrandTotal)
		query += fmt.Sprintf(", grand_total = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) InsertItem(ctx context.Context, item OrderItem) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO order_items (id, organization_id, order_id, product_id, width, height, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`, id, item.OrgID, item.OrderID, item.ProductID, item.Width, item.Height, item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) DeleteItems(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", orderID)
	return err
}

func (r *repository) GetItem(ctx context.Context, id uuid.UUID) (*OrderItem, error) {
	var it OrderItem
	err := r.db.QueryRow(ctx,
		"SELECT "+itemColumns+" FROM order_items WHERE id = $1", id,
	).Scan(&it.ID, &it.OrgID, &it.OrderID, &it.ProductID, &it.Width, &it.Height, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("order item", id)
		}
		return nil, err
	}
	return &it, nil
}
