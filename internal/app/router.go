package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/camfab-erp/camfab-erp/internal/catalog"
	"github.com/camfab-erp/camfab-erp/internal/dashboard"
	"github.com/camfab-erp/camfab-erp/internal/finance"
	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/partners"
	"github.com/camfab-erp/camfab-erp/internal/procurement"
	"github.com/camfab-erp/camfab-erp/internal/production"
	"github.com/camfab-erp/camfab-erp/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	PartnerHandler     *partners.Handler
	CatalogHandler     *catalog.Handler
	OrderHandler       *orders.Handler
	FinanceHandler     *finance.Handler
	ProductionHandler  *production.Handler
	ProcurementHandler *procurement.Handler
	UserHandler        *users.Handler
	DashboardHandler   *dashboard.Handler
}

// NewRouter constructs the chi.Router with CamFab defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		params.PartnerHandler.MountRoutes(r)
		params.CatalogHandler.MountRoutes(r)
		params.OrderHandler.MountRoutes(r)
		params.FinanceHandler.MountRoutes(r)
		params.ProductionHandler.MountRoutes(r)
		params.ProcurementHandler.MountRoutes(r)
		params.UserHandler.MountRoutes(r)
		params.DashboardHandler.MountRoutes(r)
	})

	return r
}
