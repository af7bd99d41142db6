package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/camfab-erp/camfab-erp/internal/app"
	"github.com/camfab-erp/camfab-erp/internal/catalog"
	"github.com/camfab-erp/camfab-erp/internal/dashboard"
	"github.com/camfab-erp/camfab-erp/internal/finance"
	"github.com/camfab-erp/camfab-erp/internal/orders"
	"github.com/camfab-erp/camfab-erp/internal/partners"
	"github.com/camfab-erp/camfab-erp/internal/platform/db"
	"github.com/camfab-erp/camfab-erp/internal/procurement"
	"github.com/camfab-erp/camfab-erp/internal/production"
	"github.com/camfab-erp/camfab-erp/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	partnerRepo := partners.NewRepository(pool)
	partnerService := partners.NewService(partnerRepo)
	partnerHandler := partners.NewHandler(logger, partnerService)

	orderRepo := orders.NewRepository(pool)
	orderService := orders.NewService(orderRepo, catalogRepo)
	orderHandler := orders.NewHandler(logger, orderService)

	financeRepo := finance.NewRepository(pool)
	financeService := finance.NewService(financeRepo, logger)
	financeHandler := finance.NewHandler(logger, financeService)

	productionRepo := production.NewRepository(pool)
	productionService := production.NewService(productionRepo, orderRepo, logger)
	productionHandler := production.NewHandler(logger, productionService)

	procurementRepo := procurement.NewRepository(pool)
	procurementService := procurement.NewService(procurementRepo, partnerRepo)
	procurementHandler := procurement.NewHandler(logger, procurementService)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)
	userHandler := users.NewHandler(logger, userService)

	dashboardRepo := dashboard.NewRepository(pool)
	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(dashboardRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		PartnerHandler:     partnerHandler,
		CatalogHandler:     catalogHandler,
		OrderHandler:       orderHandler,
		FinanceHandler:     financeHandler,
		ProductionHandler:  productionHandler,
		ProcurementHandler: procurementHandler,
		UserHandler:        userHandler,
		DashboardHandler:   dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
