package finance

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// Service is the ledger engine. Every transaction write moves its account
// balance in the same database transaction, so the balance is always the
// running sum of applied effects.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// applyEffect folds one transaction into a balance. IN increases it,
// OUT decreases it.
func applyEffect(balance decimal.Decimal, direction Direction, amount decimal.Decimal) decimal.Decimal {
	if direction == DirectionIn {
		return balance.Add(amount)
	}
	return balance.Sub(amount)
}

func (s *Service) CreateAccount(ctx context.Context, tenant shared.Tenant, req CreateAccountRequest) (*Account, error) {
	id, err := s.repo.CreateAccount(ctx, Account{
		OrgID:          tenant.OrgID,
		Name:           req.Name,
		CurrentBalance: decimal.Zero,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context, tenant shared.Tenant, page shared.PageRequest) ([]Account, shared.Pagination, error) {
	page = page.Normalize()
	accounts, total, err := s.repo.ListAccounts(ctx, tenant.OrgID, page)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return accounts, shared.NewPagination(page, total), nil
}

func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*Account, error) {
	if _, err := s.repo.GetAccount(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAccount(ctx, id, req); err != nil {
		return nil, err
	}
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.DeleteAccount(ctx, id)
}

func (s *Service) CreateTransaction(ctx context.Context, tenant shared.Tenant, req CreateTransactionRequest) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.Invalid("transaction amount must be positive, got %s", req.Amount)
	}
	if !req.Direction.Valid() {
		return nil, shared.Invalid("direction must be IN or OUT, got %q", req.Direction)
	}

	var id uuid.UUID
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		account, err := tx.GetAccountForUpdate(ctx, req.AccountID)
		if err != nil {
			return err
		}
		id, err = tx.InsertTransaction(ctx, Transaction{
			OrgID:           tenant.OrgID,
			AccountID:       req.AccountID,
			PartnerID:       req.PartnerID,
			OrderID:         req.OrderID,
			PurchaseOrderID: req.PurchaseOrderID,
			Direction:       req.Direction,
			Amount:          req.Amount,
			Description:     req.Description,
		})
		if err != nil {
			return err
		}
		return tx.SetAccountBalance(ctx, account.ID, applyEffect(account.CurrentBalance, req.Direction, req.Amount))
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, tenant shared.Tenant, req ListTransactionsRequest) ([]Transaction, shared.Pagination, error) {
	req.Page = req.Page.Normalize()
	txs, total, err := s.repo.ListTransactions(ctx, tenant.OrgID, req)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return txs, shared.NewPagination(req.Page, total), nil
}

// UpdateTransaction reverses the stored effect and applies the patched one.
// When the owning account changes, the old account is settled with the
// reversal alone and the new effect lands on the new account, both legs in
// one database transaction.
func (s *Service) UpdateTransaction(ctx context.Context, id uuid.UUID, req UpdateTransactionRequest) (*Transaction, error) {
	if req.Amount != nil && !req.Amount.IsPositive() {
		return nil, shared.Invalid("transaction amount must be positive, got %s", req.Amount)
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}

		newAccountID := old.AccountID
		if req.AccountID != nil {
			newAccountID = *req.AccountID
		}
		newDirection := old.Direction
		if req.Direction != nil {
			newDirection = *req.Direction
		}
		newAmount := old.Amount
		if req.Amount != nil {
			newAmount = *req.Amount
		}

		oldAccount, err := tx.GetAccountForUpdate(ctx, old.AccountID)
		if err != nil {
			return err
		}
		reversed := applyEffect(oldAccount.CurrentBalance, old.Direction.Invert(), old.Amount)

		if newAccountID == old.AccountID {
			if err := tx.SetAccountBalance(ctx, old.AccountID, applyEffect(reversed, newDirection, newAmount)); err != nil {
				return err
			}
		} else {
			if err := tx.SetAccountBalance(ctx, old.AccountID, reversed); err != nil {
				return err
			}
			newAccount, err := tx.GetAccountForUpdate(ctx, newAccountID)
			if err != nil {
				return err
			}
			if err := tx.SetAccountBalance(ctx, newAccountID, applyEffect(newAccount.CurrentBalance, newDirection, newAmount)); err != nil {
				return err
			}
		}

		return tx.UpdateTransaction(ctx, id, TransactionUpdate{
			AccountID:       req.AccountID,
			PartnerID:       req.PartnerID,
			OrderID:         req.OrderID,
			PurchaseOrderID: req.PurchaseOrderID,
			Direction:       req.Direction,
			Amount:          req.Amount,
			Description:     req.Description,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction and restores its account balance.
// A missing id reports (false, nil) rather than an error.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) (bool, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		old, err := tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		account, err := tx.GetAccountForUpdate(ctx, old.AccountID)
		if err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, id); err != nil {
			return err
		}
		return tx.SetAccountBalance(ctx, account.ID, applyEffect(account.CurrentBalance, old.Direction.Invert(), old.Amount))
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RecordOrderPayment books an incoming payment against an order and marks the
// order delivered. The order is resolved before any ledger write, so a bad
// order id leaves no trace.
func (s *Service) RecordOrderPayment(ctx context.Context, tenant shared.Tenant, req RecordOrderPaymentRequest) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, shared.Invalid("payment amount must be positive, got %s", req.Amount)
	}

	var id uuid.UUID
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.GetOrderStatusForUpdate(ctx, req.OrderID); err != nil {
			return err
		}
		account, err := tx.GetAccountForUpdate(ctx, req.AccountID)
		if err != nil {
			return err
		}
		orderID := req.OrderID
		id, err = tx.InsertTransaction(ctx, Transaction{
			OrgID:       tenant.OrgID,
			AccountID:   req.AccountID,
			OrderID:     &orderID,
			Direction:   DirectionIn,
			Amount:      req.Amount,
			Description: req.Description,
		})
		if err != nil {
			return err
		}
		if err := tx.SetAccountBalance(ctx, account.ID, applyEffect(account.CurrentBalance, DirectionIn, req.Amount)); err != nil {
			return err
		}
		return tx.SetOrderStatus(ctx, req.OrderID, orders.OrderStatusDelivered)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order payment recorded", "order_id", req.OrderID, "account_id", req.AccountID, "amount", req.Amount)
	return s.repo.GetTransaction(ctx, id)
}
