package db

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type options struct {
	log      *slog.Logger
	level    logger.LogLevel
	maxOpen  int
	maxIdle  int
	lifetime time.Duration
	idleTime time.Duration
}

type Option func(*options)

// WithLogger routes gorm's SQL log into l at the given gorm level.
func WithLogger(l *slog.Logger, level logger.LogLevel) Option {
	return func(o *options) { o.log, o.level = l, level }
}

func WithPool(maxOpen, maxIdle int) Option {
	return func(o *options) { o.maxOpen, o.maxIdle = maxOpen, maxIdle }
}

// GormLevel picks the SQL log level for an environment: statements in dev, errors only in prod.
func GormLevel(env string) logger.LogLevel {
	switch env {
	case "prod", "production":
		return logger.Error
	case "test":
		return logger.Silent
	}
	return logger.Info
}

func OpenGorm(dsn string, opts ...Option) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), opts...)
}

// OpenGormWithDialector opens, sizes the pool and pings once.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{
		level:    logger.Warn,
		maxOpen:  30,
		maxIdle:  10,
		lifetime: 30 * time.Minute,
		idleTime: 10 * time.Minute,
	}
	for _, fn := range opts {
		fn(&o)
	}

	cfg := &gorm.Config{
		Logger:               logger.Default.LogMode(o.level),
		DisableAutomaticPing: true,
	}
	if o.log != nil {
		cfg.Logger = logger.New(
			slog.NewLogLogger(o.log.Handler(), slog.LevelDebug),
			logger.Config{SlowThreshold: 200 * time.Millisecond, LogLevel: o.level, IgnoreRecordNotFoundError: true},
		)
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpen)
	sqlDB.SetMaxIdleConns(o.maxIdle)
	sqlDB.SetConnMaxLifetime(o.lifetime)
	sqlDB.SetConnMaxIdleTime(o.idleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	if o.log != nil {
		o.log.Info("gorm: connected", "max_open", o.maxOpen)
	}
	return db, nil
}

// Ping is the readiness probe for db.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
