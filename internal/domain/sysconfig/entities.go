package sysconfig

import (
	"time"

	"mutualfund-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

// SingletonID is the primary key of the one system_config row.
const SingletonID uint64 = 1

// SystemConfig holds the fund-wide business rules. General admins have no ceiling.
type SystemConfig struct {
	ID                         uint64              `gorm:"primaryKey;column:id" json:"-"`
	CountryCoordinatorLimit    decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"country_coordinator_limit"`
	FundAdminLimit             decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"fund_admin_limit"`
	MinimumDepositForGuarantor decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"minimum_deposit_for_guarantor"`
	PriorityWeight             int                 `gorm:"not null" json:"priority_weight"`
	PriorityPenalty            int                 `gorm:"not null" json:"priority_penalty_per_finance"`
	MaxLoanAmount              decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"max_loan_amount"`
	MaxLoanDurationMonths      *int                `json:"max_loan_duration_months"`
	RequireGuarantorConsensus  bool                `gorm:"not null;default:false" json:"require_guarantor_consensus"`
	Version                    int64               `gorm:"not null;default:1" json:"version"`
	UpdatedAt                  time.Time           `json:"updated_at"`
	UpdatedBy                  string              `gorm:"size:32" json:"updated_by"`
}

func (SystemConfig) TableName() string { return "system_config" }

// Patch lists the fields to change; nil fields are left alone.
type Patch struct {
	CountryCoordinatorLimit    *decimal.Decimal
	FundAdminLimit             *decimal.Decimal
	MinimumDepositForGuarantor *decimal.Decimal
	PriorityWeight             *int
	PriorityPenalty            *int
	MaxLoanAmount              *decimal.Decimal
	ClearMaxLoanAmount         bool
	MaxLoanDurationMonths      *int
	ClearMaxLoanDuration       bool
	RequireGuarantorConsensus  *bool
}

func (p Patch) Empty() bool {
	return p.CountryCoordinatorLimit == nil && p.FundAdminLimit == nil &&
		p.MinimumDepositForGuarantor == nil && p.PriorityWeight == nil &&
		p.PriorityPenalty == nil && p.MaxLoanAmount == nil && !p.ClearMaxLoanAmount &&
		p.MaxLoanDurationMonths == nil && !p.ClearMaxLoanDuration && p.RequireGuarantorConsensus == nil
}

// Validate rejects a patch that both sets and clears the same optional cap.
func (p Patch) Validate() error {
	if p.ClearMaxLoanAmount && p.MaxLoanAmount != nil {
		return apperr.Validation("max_loan_amount cannot be set and cleared in the same update")
	}
	if p.ClearMaxLoanDuration && p.MaxLoanDurationMonths != nil {
		return apperr.Validation("max_loan_duration_months cannot be set and cleared in the same update")
	}
	return nil
}

// Apply returns a copy of c with p applied. Callers check p.Validate first. Metadata fields are untouched.
func (c SystemConfig) Apply(p Patch) SystemConfig {
	out := c
	if p.CountryCoordinatorLimit != nil {
		out.CountryCoordinatorLimit = *p.CountryCoordinatorLimit
	}
	if p.FundAdminLimit != nil {
		out.FundAdminLimit = *p.FundAdminLimit
	}
	if p.MinimumDepositForGuarantor != nil {
		out.MinimumDepositForGuarantor = *p.MinimumDepositForGuarantor
	}
	if p.PriorityWeight != nil {
		out.PriorityWeight = *p.PriorityWeight
	}
	if p.PriorityPenalty != nil {
		out.PriorityPenalty = *p.PriorityPenalty
	}
	if p.ClearMaxLoanAmount {
		out.MaxLoanAmount = decimal.NullDecimal{}
	} else if p.MaxLoanAmount != nil {
		out.MaxLoanAmount = decimal.NewNullDecimal(*p.MaxLoanAmount)
	}
	if p.ClearMaxLoanDuration {
		out.MaxLoanDurationMonths = nil
	} else if p.MaxLoanDurationMonths != nil {
		v := *p.MaxLoanDurationMonths
		out.MaxLoanDurationMonths = &v
	}
	if p.RequireGuarantorConsensus != nil {
		out.RequireGuarantorConsensus = *p.RequireGuarantorConsensus
	}
	return out
}

// Validate checks the cross-field rules every stored config must satisfy.
func (c SystemConfig) Validate() error {
	switch {
	case c.CountryCoordinatorLimit.IsNegative():
		return apperr.Validation("country_coordinator_limit must not be negative")
	case c.FundAdminLimit.IsNegative():
		return apperr.Validation("fund_admin_limit must not be negative")
	case c.CountryCoordinatorLimit.GreaterThan(c.FundAdminLimit):
		return apperr.Validation("country_coordinator_limit %s exceeds fund_admin_limit %s",
			c.CountryCoordinatorLimit.StringFixed(2), c.FundAdminLimit.StringFixed(2))
	case c.MinimumDepositForGuarantor.IsNegative():
		return apperr.Validation("minimum_deposit_for_guarantor must not be negative")
	case c.PriorityWeight < 0 || c.PriorityWeight > 100:
		return apperr.Validation("priority_weight must be within 0..100, got %d", c.PriorityWeight)
	case c.PriorityPenalty < 0:
		return apperr.Validation("priority_penalty_per_finance must not be negative")
	case c.MaxLoanAmount.Valid && !c.MaxLoanAmount.Decimal.IsPositive():
		return apperr.Validation("max_loan_amount must be positive when set")
	case c.MaxLoanDurationMonths != nil && *c.MaxLoanDurationMonths <= 0:
		return apperr.Validation("max_loan_duration_months must be positive when set")
	}
	return nil
}

// Defaults seeds the singleton row on first start.
type Defaults struct {
	CountryCoordinatorLimit    decimal.Decimal
	FundAdminLimit             decimal.Decimal
	MinimumDepositForGuarantor decimal.Decimal
	PriorityWeight             int
	PriorityPenalty            int
}

func (d Defaults) Config(now time.Time) SystemConfig {
	return SystemConfig{
		ID:                         SingletonID,
		CountryCoordinatorLimit:    d.CountryCoordinatorLimit,
		FundAdminLimit:             d.FundAdminLimit,
		MinimumDepositForGuarantor: d.MinimumDepositForGuarantor,
		PriorityWeight:             d.PriorityWeight,
		PriorityPenalty:            d.PriorityPenalty,
		Version:                    1,
		UpdatedAt:                  now.UTC(),
		UpdatedBy:                  "system",
	}
}
