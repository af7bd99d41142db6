package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	FinanceSummary(ctx context.Context, orgID uuid.UUID) (*FinanceSummary, error)
	OperationsSummary(ctx context.Context, orgID uuid.UUID) (*OperationsSummary, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) FinanceSummary(ctx context.Context, orgID uuid.UUID) (*FinanceSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT direction, COALESCE(SUM(amount), 0)
		FROM financial_transactions
		WHERE organization_id = $1
		GROUP BY direction
	`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &FinanceSummary{
		Revenue:  decimal.Zero,
		Expense:  decimal.Zero,
		Currency: "TRY",
	}
	for rows.Next() {
		var direction string
		var sum decimal.Decimal
		if err := rows.Scan(&direction, &sum); err != nil {
			return nil, err
		}
		switch direction {
		case "IN":
			summary.Revenue = sum
		case "OUT":
			summary.Expense = sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	summary.Profit = summary.Revenue.Sub(summary.Expense)
	return summary, nil
}

func (r *repository) OperationsSummary(ctx context.Context, orgID uuid.UUID) (*OperationsSummary, error) {
	var s OperationsSummary
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE organization_id = $1 AND status IN ('TEKLIF', 'SIPARIS')),
			(SELECT COUNT(*) FROM orders WHERE organization_id = $1 AND status = 'URETIMDE'),
			(SELECT COUNT(*) FROM production_jobs WHERE organization_id = $1 AND status = 'COMPLETED' AND updated_at::date = CURRENT_DATE),
			(SELECT COUNT(*) FROM production_stations WHERE organization_id = $1)
	`, orgID).Scan(&s.OrdersPending, &s.OrdersInProgress, &s.JobsCompletedToday, &s.StationsActive)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
