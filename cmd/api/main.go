package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "mutualfund-backend/internal/adapter/http"
	idem "mutualfund-backend/internal/adapter/middleware"
	"mutualfund-backend/internal/adapter/repository/mysql"
	"mutualfund-backend/internal/config"
	"mutualfund-backend/internal/infrastructure/cache"
	"mutualfund-backend/internal/infrastructure/db"
	"mutualfund-backend/internal/infrastructure/logging"
	appuc "mutualfund-backend/internal/usecase/application"
	"mutualfund-backend/internal/usecase/approval"
	"mutualfund-backend/internal/usecase/guarantor"
	"mutualfund-backend/internal/usecase/repayment"
	"mutualfund-backend/internal/usecase/sysconfig"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	gdb, err := db.OpenGorm(cfg.MySQLDSN(),
		db.WithLogger(log, db.GormLevel(cfg.Env)),
		db.WithPool(25, 10))
	if err != nil {
		return err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		return err
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	repos := mysql.Repos(gdb)
	tx := mysql.NewGormUoW(gdb)
	configUC := sysconfig.NewUsecase(repos, tx, log)

	seed, err := cfg.SeedDefaults()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = configUC.Seed(ctx, seed)
	cancel()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", c.Request().Header.Get(idem.HeaderRequestID)),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS))))

	httpadp.Register(e, httpadp.Handlers{
		Health: httpadp.NewHandler(
			httpadp.Check{Name: "mysql", Ping: db.Ping(gdb)},
			httpadp.Check{Name: "redis", Ping: cache.Ping(rdb)},
		),
		Applications: httpadp.NewApplicationHandler(appuc.NewUsecase(repos, tx, log), log),
		Approvals:    httpadp.NewApprovalHandler(approval.NewUsecase(repos, tx, log), log),
		Guarantors:   httpadp.NewGuarantorHandler(guarantor.NewUsecase(repos, tx, log), log),
		Repayments:   httpadp.NewRepaymentHandler(repayment.NewUsecase(repos, tx, log), log),
		Config:       httpadp.NewConfigHandler(configUC, log),
	}, idem.Identity(), idem.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log))

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}
