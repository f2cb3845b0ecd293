package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"palmroute/internal/config"
	cronrunner "palmroute/internal/cron"
	"palmroute/internal/db"
	"palmroute/internal/handler"
	"palmroute/internal/ledger"
	"palmroute/internal/logger"
	gormrepository "palmroute/internal/repository/gorm"
	"palmroute/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("PRA_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	envOnly, _ := strconv.ParseBool(os.Getenv("PRA_ENV_ONLY"))

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close(database)

	if err := db.Ping(database); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	if err := db.SetTimezone(database, cfg.DB.Timezone); err != nil {
		return fmt.Errorf("set db timezone: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	repo := gormrepository.New(database.Gorm)

	if _, err := repo.EnsureCompanyAccount(ctx); err != nil {
		return fmt.Errorf("ensure company account: %w", err)
	}

	settings := &service.SettingsService{Repo: repo}
	if err := settings.EnsureDefaults(ctx, cfg.Sim.DefaultDifficulty); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	calc := &ledger.Calculator{Rand: jitterSource(cfg.Sim.RandSeed)}
	ledgerSvc := &service.LedgerService{
		Repo:     repo,
		Calc:     calc,
		Settings: settings,
		Logger:   log,
	}
	dispatchSvc := &service.DispatchService{Repo: repo, Ledger: ledgerSvc, Logger: log}
	cargoSvc := &service.CargoService{Repo: repo, Logger: log}
	crewLogSvc := &service.CrewLogService{Repo: repo, Ledger: ledgerSvc, Logger: log}
	snapshotSvc := &service.SnapshotService{Repo: repo, Logger: log}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())

	handlers := []interface{ Register(*gin.Engine) }{
		&handler.HealthHandler{DB: database.Gorm},
		&handler.DispatchHandler{Repo: repo, Service: dispatchSvc, Ledger: ledgerSvc},
		&handler.CargoHandler{Repo: repo, Service: cargoSvc},
		&handler.CrewLogHandler{Repo: repo, Service: crewLogSvc},
		&handler.NotamHandler{Repo: repo},
		&handler.FleetHandler{Repo: repo},
		&handler.LedgerHandler{Repo: repo, Service: ledgerSvc},
		&handler.SettingsHandler{Repo: repo, Service: settings},
		&handler.DashboardHandler{Repo: repo},
	}
	for _, h := range handlers {
		h.Register(engine)
	}

	var runner *cronrunner.Runner
	if cfg.Cron.Enabled {
		runner = cronrunner.New(log, ctx)
		if _, err := runner.Add(cfg.Cron.BalanceSnapshot, func(jobCtx context.Context) {
			if !settings.IsEnabled(jobCtx, service.FeatureBalanceSnapshot, true) {
				return
			}
			if err := snapshotSvc.SnapshotBalance(jobCtx); err != nil {
				log.Warn("balance snapshot failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("schedule balance snapshot: %w", err)
		}
		runner.Start()
		defer runner.Stop()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// jitterSource seeds the revenue jitter. A zero seed keeps runs varied; a
// fixed seed makes the simulation reproducible.
func jitterSource(seed int64) ledger.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
