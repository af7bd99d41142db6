package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// IntegrityChecker verifies that every account balance equals the sum of its
// transactions. It only reads and logs; repair stays a manual operation.
type IntegrityChecker struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIntegrityChecker(pool *pgxpool.Pool, logger *slog.Logger) *IntegrityChecker {
	return &IntegrityChecker{pool: pool, logger: logger}
}

// Handle processes TaskLedgerIntegrity tasks.
func (c *IntegrityChecker) Handle(ctx context.Context, _ *asynq.Task) error {
	drifted, err := c.Scan(ctx)
	if err != nil {
		return err
	}
	c.logger.Info("ledger integrity scan finished", slog.Int("drifted_accounts", drifted))
	return nil
}

// Scan compares each account's stored balance with the recomputed sum of its
// transactions and returns how many accounts drifted.
func (c *IntegrityChecker) Scan(ctx context.Context) (int, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT a.id, a.name, a.current_balance,
			COALESCE(SUM(CASE WHEN t.direction = 'IN' THEN t.amount ELSE -t.amount END), 0) AS computed
		FROM accounts a
		LEFT JOIN financial_transactions t ON t.account_id = a.id
		GROUP BY a.id, a.name, a.current_balance
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	drifted := 0
	for rows.Next() {
		var (
			id       string
			name     string
			stored   decimal.Decimal
			computed decimal.Decimal
		)
		if err := rows.Scan(&id, &name, &stored, &computed); err != nil {
			return drifted, err
		}
		if !stored.Equal(computed) {
			drifted++
			c.logger.Warn("account balance drift",
				slog.String("account_id", id),
				slog.String("account", name),
				slog.String("stored", stored.String()),
				slog.String("computed", computed.String()),
				slog.String("delta", stored.Sub(computed).String()),
			)
		}
	}
	return drifted, rows.Err()
}
