package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity recomputes account balances from the transaction log
	// and reports drift.
	TaskLedgerIntegrity = "ledger:integrity"
)

// NewLedgerIntegrityTask constructs the integrity scan task. It carries no
// payload; the scan always covers every account.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}
