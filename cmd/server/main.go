package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradejournal/internal/config"
	cronrunner "tradejournal/internal/cron"
	"tradejournal/internal/db"
	"tradejournal/internal/handler"
	"tradejournal/internal/logger"
	"tradejournal/internal/repository"
	"tradejournal/internal/repository/demo"
	gormrepository "tradejournal/internal/repository/gorm"
	"tradejournal/internal/service"
	"tradejournal/internal/stream"

	_ "tradejournal/docs"
)

// @title Trade Journal API
// @version 1.0
// @description Trading journal backend: trades, journal entries, strategies and derived analytics.
// @BasePath /
func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// When the DB cannot be opened the API keeps serving: reads come from
	// the embedded demo dataset, writes answer 503.
	demoMode := false
	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		if !cfg.Demo.Enabled {
			logger.Fatal("db open failed", zap.Error(err))
		}
		logger.Warn("db open failed, serving demo data", zap.Error(err))
		demoMode = true
	}

	var store repository.Repository
	if demoMode {
		demoStore, err := demo.New()
		if err != nil {
			logger.Fatal("demo dataset load failed", zap.Error(err))
		}
		store = demoStore
	} else {
		defer db.Close(dbConn)
		if err := db.AutoMigrate(dbConn); err != nil {
			logger.Fatal("auto-migrate failed", zap.Error(err))
		}
		store = gormrepository.New(dbConn.Gorm)
	}

	var hub *stream.Hub
	if cfg.Stream.Enabled {
		hub = stream.NewHub(logger, cfg.Stream.BufferSize)
	}

	analyticsSvc := &service.AnalyticsService{Repo: store, Logger: logger}
	tradeSvc := &service.TradeService{
		Repo:      store,
		Analytics: analyticsSvc,
		Logger:    logger,
	}
	if hub != nil {
		tradeSvc.Events = hub
	}
	statsSvc := &service.StrategyStatsService{Repo: store, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{Conn: dbConn, DemoMode: demoMode}
	healthHandler.Register(engine)

	tradeHandler := &handler.TradeHandler{Service: tradeSvc, Repo: store, Logger: logger}
	tradeHandler.Register(engine)
	journalHandler := &handler.JournalHandler{Repo: store}
	journalHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{Repo: store}
	strategyHandler.Register(engine)
	conditionHandler := &handler.MarketConditionHandler{Repo: store}
	conditionHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Repo: store}
	analyticsHandler.Register(engine)
	if hub != nil {
		streamHandler := &handler.StreamHandler{Hub: hub}
		streamHandler.Register(engine)
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Cron.Enabled && !demoMode {
		cronRunner := cronrunner.New(logger, ctx)
		_, err = cronRunner.Add(cfg.Cron.AnalyticsBackfill, func(ctx context.Context) {
			scored, err := analyticsSvc.Backfill(ctx, cfg.Cron.BackfillBatchSize)
			if err != nil {
				logger.Warn("analytics backfill failed", zap.Error(err))
				return
			}
			if scored > 0 {
				logger.Info("analytics backfill ok", zap.Int("trades", scored))
			}
		})
		if err != nil {
			logger.Warn("cron register analytics backfill failed", zap.Error(err))
		}
		_, err = cronRunner.Add(cfg.Cron.StrategyStats, func(ctx context.Context) {
			if err := statsSvc.RunOnce(ctx); err != nil {
				logger.Warn("strategy stats refresh failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Warn("cron register strategy stats failed", zap.Error(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr), zap.Bool("demo", demoMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
