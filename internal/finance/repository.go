package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/platform/db"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// TransactionUpdate patches transaction columns explicitly.
type TransactionUpdate struct {
	AccountID       *uuid.UUID
	PartnerID       *uuid.UUID
	OrderID         *uuid.UUID
	PurchaseOrderID *uuid.UUID
	Direction       *Direction
	Amount          *decimal.Decimal
	Description     *string
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, orgID uuid.UUID, page shared.PageRequest) ([]Account, int, error)
	CreateAccount(ctx context.Context, a Account) (uuid.UUID, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, upd UpdateAccountRequest) error
	DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error)

	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, orgID uuid.UUID, req ListTransactionsRequest) ([]Transaction, int, error)
}

// TxRepository exposes the mutations that must run inside one database
// transaction so balance effects commit atomically with record changes.
type TxRepository interface {
	GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	SetAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	InsertTransaction(ctx context.Context, t Transaction) (uuid.UUID, error)
	UpdateTransaction(ctx context.Context, id uuid.UUID, upd TransactionUpdate) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	GetOrderStatusForUpdate(ctx context.Context, id uuid.UUID) (orders.OrderStatus, error)
	SetOrderStatus(ctx context.Context, id uuid.UUID, status orders.OrderStatus) error
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

const accountColumns = "id, organization_id, name, current_balance, created_at, updated_at"
const txColumns = "id, organization_id, account_id, partner_id, order_id, purchase_order_id, direction, amount, transaction_date, description, created_at, updated_at"

func scanAccount(row pgx.Row, a *Account) error {
	return row.Scan(&a.ID, &a.OrgID, &a.Name, &a.CurrentBalance, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repository) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	var a Account
	err := scanAccount(r.db.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1", id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("account", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetAccountForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	var a Account
	err := scanAccount(r.db.QueryRow(ctx, "SELECT "+accountColumns+" FROM accounts WHERE id = $1 FOR UPDATE", id), &a)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("account", id)
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAccounts(ctx context.Context, orgID uuid.UUID, page shared.PageRequest) ([]Account, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM accounts WHERE organization_id = $1", orgID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE organization_id = $1 ORDER BY name LIMIT $2 OFFSET $3",
		orgID, page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.OrgID, &a.Name, &a.CurrentBalance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}

func (r *repository) CreateAccount(ctx context.Context, a Account) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO accounts (id, organization_id, name, current_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, id, a.OrgID, a.Name, a.CurrentBalance)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) UpdateAccount(ctx context.Context, id uuid.UUID, upd UpdateAccountRequest) error {
	query := "UPDATE accounts SET updated_at = NOW()"
	var args []interface{}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		query += fmt.Sprintf(", name = $%d", len(args))
	}
	if upd.CurrentBalance != nil {
		args = append(args, *upd.CurrentBalance)
		query += fmt.Sprintf(", current_balance = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repository) SetAccountBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	_, err := r.db.Exec(ctx, "UPDATE accounts SET current_balance = $1, updated_at = NOW() WHERE id = $2", balance, id)
	return err
}

func scanTransaction(row pgx.Row, t *Transaction) error {
	return row.Scan(&t.ID, &t.OrgID, &t.AccountID, &t.PartnerID, &t.OrderID, &t.PurchaseOrderID,
		&t.Direction, &t.Amount, &t.TransactionDate, &t.Description, &t.CreatedAt, &t.UpdatedAt)
}

func (r *repository) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := scanTransaction(r.db.QueryRow(ctx, "SELECT "+txColumns+" FROM financial_transactions WHERE id = $1", id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("transaction", id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := scanTransaction(r.db.QueryRow(ctx, "SELECT "+txColumns+" FROM financial_transactions WHERE id = $1 FOR UPDATE", id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.NotFound("transaction", id)
		}
		return nil, err
	}
	return &t, nil
}

func (r *repository) ListTransactions(ctx context.Context, orgID uuid.UUID, req ListTransactionsRequest) ([]Transaction, int, error) {
	where := "WHERE organization_id = $1"
	args := []interface{}{orgID}
	if req.AccountID != nil {
		where += fmt.Sprintf(" AND account_id = $%d", len(args)+1)
		args = append(args, *req.AccountID)
	}
	if req.Direction != nil {
		where += fmt.Sprintf(" AND direction = $%d", len(args)+1)
		args = append(args, *req.Direction)
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM financial_transactions "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM financial_transactions %s ORDER BY transaction_date DESC, id LIMIT $%d OFFSET $%d",
		txColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, req.Page.Limit(), req.Page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.OrgID, &t.AccountID, &t.PartnerID, &t.OrderID, &t.PurchaseOrderID,
			&t.Direction, &t.Amount, &t.TransactionDate, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	return result, total, rows.Err()
}

func (r *repository) InsertTransaction(ctx context.Context, t Transaction) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx, `
		INSERT INTO financial_transactions
			(id, organization_id, account_id, partner_id, order_id, purchase_order_id, direction, amount, transaction_date, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), $9, NOW(), NOW())
	`, id, t.OrgID, t.AccountID, t.PartnerID, t.OrderID, t.PurchaseOrderID, t.Direction, t.Amount, t.Description)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *repository) UpdateTransaction(ctx context.Context, id uuid.UUID, upd TransactionUpdate) error {
	query := "UPDATE financial_transactions SET updated_at = NOW()"
	var args []interface{}
	if upd.AccountID != nil {
		args = append(args, *upd.AccountID)
		query += fmt.Sprintf(", account_id = $%d", len(args))
	}
	if upd.PartnerID != nil {
		args = append(args, *upd.PartnerID)
		query += fmt.Sprintf(", partner_id = $%d", len(args))
	}
	if upd.OrderID != nil {
		args = append(args, *upd.OrderID)
		query += fmt.Sprintf(", order_id = $%d", len(args))
	}
	if upd.PurchaseOrderID != nil {
		args = append(args, *upd.PurchaseOrderID)
		query += fmt.Sprintf(", purchase_order_id = $%d", len(args))
	}
	if upd.Direction != nil {
		args = append(args, *upd.Direction)
		query += fmt.Sprintf(", direction = $%d", len(args))
	}
	if upd.Amount != nil {
		args = append(args, *upd.Amount)
		query += fmt.Sprintf(", amount = $%d", len(args))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		query += fmt.Sprintf(", description = $%d", len(args))
	}
	args = append(args, id)
	query += fmt.Sprintf(" WHERE id = $%d", len(args))

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM financial_transactions WHERE id = $1", id)
	return err
}

func (r *repository) GetOrderStatusForUpdate(ctx context.Context, id uuid.UUID) (orders.OrderStatus, error) {
	var status orders.OrderStatus
	err := r.db.QueryRow(ctx, "SELECT status FROM orders WHERE id = $1 FOR UPDATE", id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.NotFound("order", id)
		}
		return "", err
	}
	return status, nil
}

func (r *repository) SetOrderStatus(ctx context.Context, id uuid.UUID, status orders.OrderStatus) error {
	_, err := r.db.Exec(ctx, "UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	return err
}
