// Package authority decides which reviewer tier may act on an amount.
// Everything here is a pure function of the amount, the role and the config.
package authority

import (
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/sysconfig"

	"github.com/shopspring/decimal"
)

// Ceiling returns the largest amount role may decide. unlimited is true for the general admin;
// ok is false for roles without approval authority.
func Ceiling(r role.Role, cfg sysconfig.SystemConfig) (limit decimal.Decimal, unlimited, ok bool) {
	switch r {
	case role.CountryCoordinator:
		return cfg.CountryCoordinatorLimit, false, true
	case role.FundAdmin:
		return cfg.FundAdminLimit, false, true
	case role.GeneralAdmin:
		return decimal.Zero, true, true
	}
	return decimal.Zero, false, false
}

// CanAct reports whether r may decide an application of amount under cfg.
func CanAct(r role.Role, amount decimal.Decimal, cfg sysconfig.SystemConfig) bool {
	limit, unlimited, ok := Ceiling(r, cfg)
	if !ok {
		return false
	}
	return unlimited || amount.LessThanOrEqual(limit)
}

// RequiredLevel is the lowest reviewer tier whose ceiling covers amount.
func RequiredLevel(amount decimal.Decimal, cfg sysconfig.SystemConfig) role.Role {
	for _, r := range role.Reviewers {
		if CanAct(r, amount, cfg) {
			return r
		}
	}
	return role.GeneralAdmin
}

// Admits reports whether r ranks at or above the stored required level.
// An empty level admits every reviewer.
func Admits(r role.Role, level role.Role) bool {
	if !r.IsReviewer() {
		return false
	}
	if level == "" {
		return true
	}
	return r.AtLeast(level)
}

// Decides combines the ceiling and the stored level: the reviewer may approve or reject.
func Decides(r role.Role, amount decimal.Decimal, level role.Role, cfg sysconfig.SystemConfig) bool {
	return CanAct(r, amount, cfg) && Admits(r, level)
}

// Next returns the tier above level; ok is false at the top.
func Next(level role.Role) (role.Role, bool) {
	if level == "" {
		level = role.CountryCoordinator
	}
	return level.Next()
}
