package guarantor

import (
	"context"
	"errors"
	"time"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	domain "mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttachWithin adds guarantors to app inside the caller's transaction. Used at submission
// and when the applicant amends an open application.
func AttachWithin(ctx context.Context, r uow.Repos, cfg *sysconfig.SystemConfig, app *application.Application, reqs []Request, now time.Time) ([]domain.Assignment, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	existing, err := r.Guarantors.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing)+len(reqs))
	for _, e := range existing {
		seen[e.GuarantorID] = true
	}

	committed := domain.Committed(existing)
	explicit := decimal.Zero
	implicit := 0
	for _, q := range reqs {
		if q.MemberID == "" {
			return nil, apperr.Validation("guarantor member_id is required")
		}
		if seen[q.MemberID] {
			return nil, apperr.Validation("member %s is already a guarantor on this application", q.MemberID)
		}
		seen[q.MemberID] = true
		if q.Share == nil {
			implicit++
			continue
		}
		if !q.Share.IsPositive() {
			return nil, apperr.Validation("guarantor share must be positive")
		}
		if !q.Share.Equal(q.Share.Round(2)) {
			return nil, apperr.Validation("guarantor share must have at most 2 decimal places")
		}
		explicit = explicit.Add(*q.Share)
	}

	remaining := app.Amount.Sub(committed).Sub(explicit)
	if remaining.IsNegative() {
		return nil, apperr.OverCommit("shares total %s exceeds application amount %s",
			committed.Add(explicit).StringFixed(2), app.Amount.StringFixed(2))
	}
	var split []decimal.Decimal
	if implicit > 0 {
		if !remaining.IsPositive() {
			return nil, apperr.OverCommit("no uncovered amount left to split across %d guarantors", implicit)
		}
		split = domain.SplitEqually(remaining, implicit)
	}

	out := make([]domain.Assignment, 0, len(reqs))
	for _, q := range reqs {
		if err := checkEligible(ctx, r, cfg, app, q.MemberID); err != nil {
			return nil, err
		}
		var share decimal.Decimal
		if q.Share != nil {
			share = *q.Share
		} else {
			share, split = split[0], split[1:]
		}
		if !share.IsPositive() {
			return nil, apperr.OverCommit("uncovered amount is too small to split")
		}
		a := domain.Assignment{
			AssignmentID:  id.NewID32(),
			ApplicationID: app.ID,
			GuarantorID:   q.MemberID,
			Share:         share,
			Status:        domain.StatusPending,
			RequestedAt:   now.UTC(),
		}
		if err := r.Guarantors.Create(ctx, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func checkEligible(ctx context.Context, r uow.Repos, cfg *sysconfig.SystemConfig, app *application.Application, memberID string) error {
	if memberID == app.MemberID {
		return apperr.IneligibleGuarantor("applicants cannot guarantee their own application")
	}
	m, err := r.Members.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.IneligibleGuarantor("member %s does not exist", memberID)
		}
		return err
	}
	if !m.Active {
		return apperr.IneligibleGuarantor("member %s is inactive", memberID)
	}
	total, err := r.Members.CompletedDeposits(ctx, memberID)
	if err != nil {
		return err
	}
	if total.LessThan(cfg.MinimumDepositForGuarantor) {
		return apperr.IneligibleGuarantor("member %s has deposited %s, below the %s minimum",
			memberID, total.StringFixed(2), cfg.MinimumDepositForGuarantor.StringFixed(2))
	}
	return nil
}
