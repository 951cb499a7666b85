package mysql

import (
	"testing"
	"time"

	appDomain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeApplication(memberID string, amount int64, score int, submitted time.Time) *appDomain.Application {
	return &appDomain.Application{
		ApplicationID:  id.NewID32(),
		MemberID:       memberID,
		Amount:         decimal.NewFromInt(amount),
		DurationMonths: 12,
		Purpose:        "school fees",
		PriorityScore:  score,
		Status:         appDomain.StatusPending,
		RequiredLevel:  role.CountryCoordinator,
		Version:        1,
		SubmittedAt:    submitted.UTC(),
	}
}
