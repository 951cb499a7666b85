package mysql

import (
	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/repayment"
	"mutualfund-backend/internal/domain/sysconfig"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&member.Member{},
		&member.Deposit{},
		&sysconfig.SystemConfig{},
		&application.Application{},
		&application.Decision{},
		&guarantor.Assignment{},
		&repayment.Installment{},
	)
}
