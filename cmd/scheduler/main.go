package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mutualfund-backend/internal/adapter/repository/mysql"
	"mutualfund-backend/internal/config"
	"mutualfund-backend/internal/infrastructure/db"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/repayment"

	"github.com/robfig/cron/v3"
)

// sweepTimeout caps a single overdue pass.
const sweepTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := logging.NewLogger(cfg.Env, cfg.LogLevel)

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), db.WithLogger(log, db.GormLevel(cfg.Env)))
	if err != nil {
		log.Error("open database", "err", err)
		os.Exit(1)
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		log.Error("auto-migrate", "err", err)
		os.Exit(1)
	}
	uc := repayment.NewUsecase(mysql.Repos(gdb), mysql.NewGormUoW(gdb), log)

	c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = c.AddFunc(cfg.OverdueSweepCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		if _, err := uc.SweepOverdue(ctx); err != nil {
			log.Error("overdue sweep failed", "err", err)
		}
	})
	if err != nil {
		log.Error("schedule overdue sweep", "spec", cfg.OverdueSweepCron, "err", err)
		os.Exit(1)
	}
	c.Start()
	log.Info("scheduler started", "overdue_sweep", cfg.OverdueSweepCron)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stopping scheduler")
	<-c.Stop().Done()
}
