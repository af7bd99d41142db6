package dashboard

import "github.com/shopspring/decimal"

// FinanceSummary aggregates the ledger into revenue, expense and profit.
type FinanceSummary struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expense  decimal.Decimal `json:"expense"`
	Profit   decimal.Decimal `json:"profit"`
	Currency string          `json:"currency"`
}

// OperationsSummary counts orders by stage and production activity.
type OperationsSummary struct {
	OrdersPending      int `json:"orders_pending"`
	OrdersInProgress   int `json:"orders_in_progress"`
	JobsCompletedToday int `json:"jobs_completed_today"`
	StationsActive     int `json:"stations_active"`
}
