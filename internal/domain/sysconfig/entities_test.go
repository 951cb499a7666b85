package sysconfig

import (
	"errors"
	"testing"
	"time"

	"mutualfund-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() SystemConfig {
	return Defaults{
		CountryCoordinatorLimit:    decimal.NewFromInt(1000),
		FundAdminLimit:             decimal.NewFromInt(5000),
		MinimumDepositForGuarantor: decimal.NewFromInt(500),
		PriorityWeight:             100,
		PriorityPenalty:            10,
	}.Config(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestValidate(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	zero := decimal.Zero
	two := decimal.NewFromInt(2000)
	w101, wNeg := 101, -1
	months0 := 0

	tests := []struct {
		name  string
		patch Patch
		ok    bool
	}{
		{"defaults", Patch{}, true},
		{"negative cc limit", Patch{CountryCoordinatorLimit: &neg}, false},
		{"negative fa limit", Patch{FundAdminLimit: &neg, CountryCoordinatorLimit: &neg}, false},
		{"inverted hierarchy", Patch{CountryCoordinatorLimit: &two, FundAdminLimit: &zero}, false},
		{"equal limits allowed", Patch{CountryCoordinatorLimit: &two, FundAdminLimit: &two}, true},
		{"weight above 100", Patch{PriorityWeight: &w101}, false},
		{"weight below 0", Patch{PriorityWeight: &wNeg}, false},
		{"negative min deposit", Patch{MinimumDepositForGuarantor: &neg}, false},
		{"zero max amount", Patch{MaxLoanAmount: &zero}, false},
		{"zero max duration", Patch{MaxLoanDurationMonths: &months0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := baseConfig().Apply(tt.patch).Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}
}

func TestApply_OnlyTouchesPresentFields(t *testing.T) {
	c := baseConfig()
	w := 80
	out := c.Apply(Patch{PriorityWeight: &w})
	assert.Equal(t, 80, out.PriorityWeight)
	assert.True(t, out.FundAdminLimit.Equal(c.FundAdminLimit))
	assert.Equal(t, c.Version, out.Version)
	assert.Equal(t, 100, c.PriorityWeight, "receiver must not change")
}

func TestApply_SetAndClearCaps(t *testing.T) {
	c := baseConfig()
	cap := decimal.NewFromInt(10000)
	months := 24
	withCaps := c.Apply(Patch{MaxLoanAmount: &cap, MaxLoanDurationMonths: &months})
	require.True(t, withCaps.MaxLoanAmount.Valid)
	require.NotNil(t, withCaps.MaxLoanDurationMonths)
	assert.Equal(t, 24, *withCaps.MaxLoanDurationMonths)

	cleared := withCaps.Apply(Patch{ClearMaxLoanAmount: true, ClearMaxLoanDuration: true})
	assert.False(t, cleared.MaxLoanAmount.Valid)
	assert.Nil(t, cleared.MaxLoanDurationMonths)
}

func TestPatch_Empty(t *testing.T) {
	assert.True(t, Patch{}.Empty())
	b := true
	assert.False(t, Patch{RequireGuarantorConsensus: &b}.Empty())
	assert.False(t, Patch{ClearMaxLoanAmount: true}.Empty())
}

func TestPatch_Validate(t *testing.T) {
	limit := decimal.NewFromInt(4000)
	months := 12

	require.NoError(t, Patch{MaxLoanAmount: &limit, ClearMaxLoanDuration: true}.Validate())
	require.NoError(t, Patch{ClearMaxLoanAmount: true, MaxLoanDurationMonths: &months}.Validate())

	err := Patch{MaxLoanAmount: &limit, ClearMaxLoanAmount: true}.Validate()
	assert.True(t, errors.Is(err, apperr.ErrValidation), "amount set+clear: %v", err)

	err = Patch{MaxLoanDurationMonths: &months, ClearMaxLoanDuration: true}.Validate()
	assert.True(t, errors.Is(err, apperr.ErrValidation), "duration set+clear: %v", err)
}
