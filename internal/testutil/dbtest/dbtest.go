// Package dbtest opens a migrated in-memory sqlite database and seeds fixtures for usecase tests.
package dbtest

import (
	"testing"
	"time"

	"mutualfund-backend/internal/adapter/repository/mysql"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database. A single connection keeps ":memory:" shared and
// serializes transactions the way a row lock would.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

// DefaultConfig: coordinators up to 1000, fund admins up to 5000, guarantors need 500 deposited.
func DefaultConfig() sysconfig.SystemConfig {
	return sysconfig.Defaults{
		CountryCoordinatorLimit:    decimal.NewFromInt(1000),
		FundAdminLimit:             decimal.NewFromInt(5000),
		MinimumDepositForGuarantor: decimal.NewFromInt(500),
		PriorityWeight:             100,
		PriorityPenalty:            10,
	}.Config(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func SeedConfig(t testing.TB, db *gorm.DB, c sysconfig.SystemConfig) *sysconfig.SystemConfig {
	t.Helper()
	c.ID = sysconfig.SingletonID
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed config: %v", err)
	}
	return &c
}

// SeedMember creates an active member with one completed deposit of deposit (skipped when zero).
func SeedMember(t testing.TB, db *gorm.DB, r role.Role, country string, deposit int64) *member.Member {
	t.Helper()
	m := &member.Member{
		MemberID: id.NewID32(),
		FullName: string(r) + " " + country,
		Country:  country,
		Role:     r,
		Active:   true,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	if deposit > 0 {
		d := &member.Deposit{MemberID: m.MemberID, Amount: decimal.NewFromInt(deposit), Status: member.DepositCompleted}
		if err := db.Create(d).Error; err != nil {
			t.Fatalf("seed deposit: %v", err)
		}
	}
	return m
}
