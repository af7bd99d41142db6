package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/camfab-erp/camfab-erp/internal/platform/db"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	Get(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	List(ctx context.Context, orgID uuid.UUID, req ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error)
	Insert(ctx context.Context, po PurchaseOrder) (uuid.UUID, error)
	InsertItem(ctx context.Context, item PurchaseOrderItem) (uuid.UUID, error)
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

const poColumns = "id, organization_id, partner_id, grand_total, created_at, updated_at"
const poItemColumns = "id, organization_id, purchase_order_id, material_name, quantity, unit_price, total_price, created_at"

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := r.db.QueryRow(ctx,
		"SELECT "+poColumns+" FROM purchase_orders WHERE id = $1", id,
	).Scan(&po.ID, &po.OrgID, &po.PartnerID, &po.GrandTotal, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("purchase order", id)
		}
		return nil, err
	}
	items, err := r.itemsFor(ctx, po.ID)
	if err != nil {
		return nil, err
	}
	po.Items = items
	return &po, nil
}

func (r *repository) itemsFor(ctx context.Context, poID uuid.UUID) ([]PurchaseOrderItem, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+poItemColumns+" FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY created_at, id", poID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PurchaseOrderItem
	for rows.Next() {
		var it PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.OrgID, &it.PurchaseOrderID, &it.MaterialName, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, orgID uuid.UUID, req ListPurchaseOrdersRequest) ([]PurchaseOrder, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.PartnerID != nil {
		where += fmt.Sprintf(" AND partner_id = $%d", len(args)+1)
		args = append(args, *req.PartnerID)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM purchase_orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM purchase_orders %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		poColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []PurchaseOrder
	for rows.Next() {
		var po PurchaseOrder
		if err := rows.Scan(&po.ID, &po.OrgID, &po.PartnerID, &po.GrandTotal, &po.CreatedAt, &po.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, po)
	}
	return result, total, rows.Err()
}

func (r *repository) Insert(ctx context.Context, po PurchaseOrder) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO purchase_orders (id, organization_id, partner_id, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, id, po.OrgID, po.PartnerID, po.GrandTotal)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item PurchaseOrderItem) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO purchase_order_items
			(id, organization_id, purchase_order_id, material_name, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, id, item.OrgID, item.PurchaseOrderID, item.MaterialName, item.Quantity, item.UnitPrice, item.TotalPrice)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
