package partners

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
	var req CreatePartnerRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	tenant, _ := shared.TenantFromContext(r.Context())
	partner, err := h.service.Create(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("create partner failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, partner)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid partner id")
		return
	}
	partner, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, partner)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListPartnersRequest{Page: pageFromQuery(r)}
	if q := r.URL.Query().Get("q"); q != "" {
		req.Search = &q
	}

	tenant, _ := shared.TenantFromContext(r.Context())
	partners, total, err := h.service.List(r.Context(), tenant, req)
	if err != nil {
		h.logger.Error("list partners failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      partners,
		"pagination": shared.NewPagination(req.Page, total),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid partner id")
		return
	}
	var req UpdatePartnerRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	partner, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, partner)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid partner id")
		return
	}
	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if !deleted {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "partner "+id.String())
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
