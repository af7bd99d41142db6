package dashboard

import (
	"log/slog"
	"net/http"

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

func (h *Handler) FinanceSummary(w http.ResponseWriter, r *http.Request) {
	tenant, _ := shared.TenantFromContext(r.Context())
	summary, err := h.service.FinanceSummary(r.Context(), tenant)
	if err != nil {
		h.logger.Error("finance summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) OperationsSummary(w http.ResponseWriter, r *http.Request) {
	tenant, _ := shared.TenantFromContext(r.Context())
	summary, err := h.service.OperationsSummary(r.Context(), tenant)
	if err != nil {
		h.logger.Error("operations summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
