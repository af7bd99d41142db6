package finance

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/camfab-erp/camfab-erp/internal/platform/httpx"
	"github.com/camfab-erp/camfab-erp/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tenant, _ := shared.TenantFromContext(r.Context())
	account, err := h.service.CreateAccount(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("create account failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, account)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	account, err := h.service.GetAccount(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	tenant, _ := shared.TenantFromContext(r.Context())
	accounts, pagination, err := h.service.ListAccounts(r.Context(), tenant, pageFromQuery(r))
	if err != nil {
		h.logger.Error("list accounts failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      accounts,
		"pagination": pagination,
	})
}

func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	var req UpdateAccountRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	account, err := h.service.UpdateAccount(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, account)
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
		return
	}
	deleted, err := h.service.DeleteAccount(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !deleted {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "account "+id.String())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tenant, _ := shared.TenantFromContext(r.Context())
	tx, err := h.service.CreateTransaction(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("create transaction failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	tx, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tx)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	req := ListTransactionsRequest{Page: pageFromQuery(r)}
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid account id")
			return
		}
		req.AccountID = &id
	}
	if raw := r.URL.Query().Get("direction"); raw != "" {
		direction := Direction(raw)
		if !direction.Valid() {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "direction must be IN or OUT")
			return
		}
		req.Direction = &direction
	}

	tenant, _ := shared.TenantFromContext(r.Context())
	txs, pagination, err := h.service.ListTransactions(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("list transactions failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      txs,
		"pagination": pagination,
	})
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	var req UpdateTransactionRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tx, err := h.service.UpdateTransaction(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid transaction id")
		return
	}
	deleted, err := h.service.DeleteTransaction(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !deleted {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "transaction "+id.String())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecordOrderPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordOrderPaymentRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tenant, _ := shared.TenantFromContext(r.Context())
	tx, err := h.service.RecordOrderPayment(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("record order payment failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, tx)
}

func pageFromQuery(r *http.Request) shared.PageRequest {
	page := shared.PageRequest{}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		page.PerPage = v
	}
	return page.Normalize()
}
