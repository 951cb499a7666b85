package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"mutualfund-backend/internal/domain/sysconfig"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	MySQLHost string `mapstructure:"MYSQL_HOST"`
	MySQLPort string `mapstructure:"MYSQL_PORT"`
	MySQLDB   string `mapstructure:"MYSQL_DB"`
	MySQLUser string `mapstructure:"MYSQL_USER"`
	MySQLPass string `mapstructure:"MYSQL_PASS"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	IdempTTLSecs int     `mapstructure:"IDEMPOTENCY_TTL_SECONDS"`
	RateLimitRPS float64 `mapstructure:"RATE_LIMIT_RPS"`

	// OverdueSweepCron is a six-field (with seconds) cron spec for cmd/scheduler.
	OverdueSweepCron string `mapstructure:"OVERDUE_SWEEP_CRON"`

	// Seed values for system_config; only used when the row does not exist yet.
	DefaultCCLimit             string `mapstructure:"DEFAULT_CC_LIMIT"`
	DefaultFALimit             string `mapstructure:"DEFAULT_FA_LIMIT"`
	DefaultMinGuarantorDeposit string `mapstructure:"DEFAULT_MIN_GUARANTOR_DEPOSIT"`
	DefaultPriorityWeight      int    `mapstructure:"DEFAULT_PRIORITY_WEIGHT"`
	DefaultPriorityPenalty     int    `mapstructure:"DEFAULT_PRIORITY_PENALTY"`
}

var defaults = map[string]any{
	"APP_PORT":                      "8080",
	"ENV":                           "development",
	"LOG_LEVEL":                     "info",
	"MYSQL_HOST":                    "mysql",
	"MYSQL_PORT":                    "3306",
	"MYSQL_DB":                      "mutualfund",
	"MYSQL_USER":                    "mutualfund",
	"MYSQL_PASS":                    "mutualfund",
	"REDIS_ADDR":                    "redis:6379",
	"REDIS_DB":                      0,
	"IDEMPOTENCY_TTL_SECONDS":       300,
	"RATE_LIMIT_RPS":                20.0,
	"OVERDUE_SWEEP_CRON":            "0 0 1 * * *",
	"DEFAULT_CC_LIMIT":              "1000",
	"DEFAULT_FA_LIMIT":              "5000",
	"DEFAULT_MIN_GUARANTOR_DEPOSIT": "500",
	"DEFAULT_PRIORITY_WEIGHT":       100,
	"DEFAULT_PRIORITY_PENALTY":      10,
}

// Load reads the environment, then an optional .env in the working directory.
func Load() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, dir string) (*Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be greater than 0")
	}
	if c.RateLimitRPS <= 0 {
		return errors.New("RATE_LIMIT_RPS must be greater than 0")
	}
	if _, err := cron.NewParser(cronFields).Parse(c.OverdueSweepCron); err != nil {
		return fmt.Errorf("OVERDUE_SWEEP_CRON: %w", err)
	}
	if _, err := c.SeedDefaults(); err != nil {
		return err
	}
	return nil
}

const cronFields = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

func (c *Config) IsProduction() bool { return c.Env == "production" || c.Env == "prod" }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps due dates on their calendar day
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// SeedDefaults converts the DEFAULT_* values and checks them with the same rules as a config update.
func (c *Config) SeedDefaults() (sysconfig.Defaults, error) {
	parse := func(key, raw string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return d, fmt.Errorf("%s must be a valid decimal: %w", key, err)
		}
		return d, nil
	}
	var (
		d   sysconfig.Defaults
		err error
	)
	if d.CountryCoordinatorLimit, err = parse("DEFAULT_CC_LIMIT", c.DefaultCCLimit); err != nil {
		return d, err
	}
	if d.FundAdminLimit, err = parse("DEFAULT_FA_LIMIT", c.DefaultFALimit); err != nil {
		return d, err
	}
	if d.MinimumDepositForGuarantor, err = parse("DEFAULT_MIN_GUARANTOR_DEPOSIT", c.DefaultMinGuarantorDeposit); err != nil {
		return d, err
	}
	d.PriorityWeight = c.DefaultPriorityWeight
	d.PriorityPenalty = c.DefaultPriorityPenalty

	probe := d.Config(time.Time{})
	if err := probe.Validate(); err != nil {
		return d, fmt.Errorf("DEFAULT_*: %w", err)
	}
	return d, nil
}
