package application

import (
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/role"

	"github.com/shopspring/decimal"
)

// State is what replaying the decision log yields.
type State struct {
	Status          Status
	RequiredLevel   role.Role
	ApprovedAmount  decimal.NullDecimal
	DisbursedAmount decimal.NullDecimal
	Version         int64
}

// Apply folds one decision into s. It is the only place statuses change.
func Apply(s State, d Decision) (State, error) {
	if d.Seq != s.Version+1 {
		return s, apperr.InvalidTransition("decision seq %d does not follow version %d", d.Seq, s.Version)
	}
	next := s
	next.Version = d.Seq

	switch d.Action {
	case ActionSubmit:
		if s.Version != 0 {
			return s, apperr.InvalidTransition("application already submitted")
		}
		next.Status = StatusPending
		next.RequiredLevel = d.ToLevel

	case ActionStartReview:
		if s.Status != StatusPending && s.Status != StatusRequiresHigherApproval {
			return s, apperr.InvalidTransition("cannot start review from %s", s.Status)
		}
		next.Status = StatusUnderReview

	case ActionApprove:
		if !s.Status.Open() {
			return s, apperr.InvalidTransition("cannot approve from %s", s.Status)
		}
		if !d.Amount.Valid || !d.Amount.Decimal.IsPositive() {
			return s, apperr.Validation("approved amount must be positive")
		}
		next.Status = StatusApproved
		next.ApprovedAmount = d.Amount

	case ActionReject:
		if !s.Status.Open() {
			return s, apperr.InvalidTransition("cannot reject from %s", s.Status)
		}
		next.Status = StatusRejected

	case ActionEscalate:
		if !s.Status.Open() {
			return s, apperr.InvalidTransition("cannot escalate from %s", s.Status)
		}
		if s.RequiredLevel == role.GeneralAdmin {
			return s, apperr.AlreadyAtTop()
		}
		if d.ToLevel.Rank() <= s.RequiredLevel.Rank() || !d.ToLevel.IsReviewer() {
			return s, apperr.InvalidTransition("escalation target %q is not above %q", d.ToLevel, s.RequiredLevel)
		}
		next.Status = StatusRequiresHigherApproval
		next.RequiredLevel = d.ToLevel

	case ActionRequestMoreInfo:
		if !s.Status.Open() {
			return s, apperr.InvalidTransition("cannot request info from %s", s.Status)
		}

	case ActionDisburse:
		if s.Status != StatusApproved {
			return s, apperr.InvalidTransition("cannot disburse from %s", s.Status)
		}
		if !d.Amount.Valid || !d.Amount.Decimal.IsPositive() {
			return s, apperr.Validation("disbursed amount must be positive")
		}
		if s.ApprovedAmount.Valid && d.Amount.Decimal.GreaterThan(s.ApprovedAmount.Decimal) {
			return s, apperr.Validation("disbursed amount exceeds approved amount")
		}
		next.Status = StatusDisbursed
		next.DisbursedAmount = d.Amount

	case ActionRepayment:
		if !s.Status.InRepayment() {
			return s, apperr.InvalidTransition("cannot record repayment from %s", s.Status)
		}
		switch d.ResultStatus {
		case StatusRepaying, StatusOverdue, StatusCompleted:
			next.Status = d.ResultStatus
		default:
			return s, apperr.InvalidTransition("repayment cannot result in %q", d.ResultStatus)
		}

	case ActionOverdue:
		if !s.Status.InRepayment() {
			return s, apperr.InvalidTransition("cannot mark overdue from %s", s.Status)
		}
		next.Status = StatusOverdue

	default:
		return s, apperr.Validation("unknown action %q", d.Action)
	}
	return next, nil
}

// Replay rebuilds the state of an application from its ordered decisions.
func Replay(decisions []Decision) (State, error) {
	var s State
	for _, d := range decisions {
		n, err := Apply(s, d)
		if err != nil {
			return s, err
		}
		if d.ResultStatus != "" && d.ResultStatus != n.Status {
			return s, apperr.InvalidTransition("decision %d records %s but replays to %s", d.Seq, d.ResultStatus, n.Status)
		}
		s = n
	}
	return s, nil
}
