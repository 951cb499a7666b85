package mysql

import (
	"context"

	configDomain "mutualfund-backend/internal/domain/sysconfig"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository struct{ db *gorm.DB }

func NewConfigRepository(db *gorm.DB) *ConfigRepository { return &ConfigRepository{db: db} }

func (r *ConfigRepository) Get(ctx context.Context) (*configDomain.SystemConfig, error) {
	var out configDomain.SystemConfig
	res := r.db.WithContext(ctx).First(&out, configDomain.SingletonID)
	return &out, res.Error
}

func (r *ConfigRepository) Seed(ctx context.Context, c *configDomain.SystemConfig) error {
	c.ID = configDomain.SingletonID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(c).Error
}

func (r *ConfigRepository) UpdateVersioned(ctx context.Context, c *configDomain.SystemConfig, expected int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&configDomain.SystemConfig{}).
		Where("id = ? AND version = ?", configDomain.SingletonID, expected).
		Updates(map[string]any{
			"country_coordinator_limit":     c.CountryCoordinatorLimit,
			"fund_admin_limit":              c.FundAdminLimit,
			"minimum_deposit_for_guarantor": c.MinimumDepositForGuarantor,
			"priority_weight":               c.PriorityWeight,
			"priority_penalty":              c.PriorityPenalty,
			"max_loan_amount":               c.MaxLoanAmount,
			"max_loan_duration_months":      c.MaxLoanDurationMonths,
			"require_guarantor_consensus":   c.RequireGuarantorConsensus,
			"version":                       expected + 1,
			"updated_at":                    c.UpdatedAt,
			"updated_by":                    c.UpdatedBy,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	c.Version = expected + 1
	return true, nil
}
