package procurement

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseOrderRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	tenant, _ := shared.TenantFromContext(r.Context())
	po, err := h.service.Create(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("create purchase order failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, po)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid purchase order id")
		return
	}
	po, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListPurchaseOrdersRequest{Page: pageFromQuery(r)}
	if raw := r.URL.Query().Get("partner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid partner id")
			return
		}
		req.PartnerID = &id
	}
	tenant, _ := shared.TenantFromContext(r.Context())
	result, pagination, err := h.service.List(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("list purchase orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      result,
		"pagination": pagination,
	})
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
