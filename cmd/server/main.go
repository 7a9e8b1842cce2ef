package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/config"
	"github.com/gaysay/backoffice/internal/repository/mongodb"
	"github.com/gaysay/backoffice/internal/repository/sheets"
	"github.com/gaysay/backoffice/internal/scheduler"
	"github.com/gaysay/backoffice/internal/server/handlers"
	"github.com/gaysay/backoffice/internal/server/router"
	catalogsvc "github.com/gaysay/backoffice/internal/service/catalog"
	purchasingsvc "github.com/gaysay/backoffice/internal/service/purchasing"
	reportingsvc "github.com/gaysay/backoffice/internal/service/reporting"
	sellssvc "github.com/gaysay/backoffice/internal/service/sells"
	userssvc "github.com/gaysay/backoffice/internal/service/users"
	"github.com/gaysay/backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	// Spreadsheet export is optional; the reporting service treats a nil
	// exporter as "snapshot to MongoDB only".
	var exporter reportingsvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewReportExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets export not configured, snapshots stay in mongodb only")
	}

	sellsService := sellssvc.NewService(mongoRepo, baseLogger.Named("svc.sells"))
	catalogService := catalogsvc.NewService(mongoRepo, baseLogger.Named("svc.catalog"))
	purchasingService := purchasingsvc.NewService(mongoRepo, baseLogger.Named("svc.purchasing"))
	usersService := userssvc.NewService(mongoRepo, baseLogger.Named("svc.users"))
	reportingService := reportingsvc.NewService(mongoRepo, mongoRepo, exporter, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Sells:    handlers.NewSellsHandler(sellsService, baseLogger.Named("handlers.sells")),
		Menu:     handlers.NewMenuHandler(catalogService, baseLogger.Named("handlers.menu")),
		Purchase: handlers.NewPurchaseHandler(purchasingService, baseLogger.Named("handlers.purchase")),
		User:     handlers.NewUserHandler(usersService, baseLogger.Named("handlers.user")),
		Report:   handlers.NewReportHandler(reportingService, baseLogger.Named("handlers.report")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingService, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
