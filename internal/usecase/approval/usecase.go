package approval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/authority"
	"mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/repayment"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/infrastructure/logging"
	appuc "mutualfund-backend/internal/usecase/application"
	"mutualfund-backend/internal/usecase/workflow"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
)

const restrictionConsent = "awaiting guarantor consent"

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *slog.Logger
	now   func() time.Time
}

// NewUsecase: repos serve queue reads, the UoW serializes transitions per application.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *slog.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: logging.OrDiscard(log), now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Queue lists the open applications the reviewer may decide, highest priority first.
// Config is read fresh so a ceiling change moves items without touching them.
func (u *Usecase) Queue(ctx context.Context, in QueueInput) ([]QueueItem, error) {
	actor, err := workflow.ResolveActor(ctx, u.repos.Members, in.ActorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsReviewer() {
		return nil, apperr.NotAuthorized("only reviewers have an approval queue")
	}
	cfg, err := u.repos.Config.Get(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := u.repos.Applications.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	applicants, err := u.applicants(ctx, apps)
	if err != nil {
		return nil, err
	}

	out := make([]QueueItem, 0, len(apps))
	for i := range apps {
		a := &apps[i]
		applicant := applicants[a.MemberID]
		if applicant == nil || !workflow.InScope(actor, applicant) || a.MemberID == actor.MemberID {
			continue
		}
		item := QueueItem{
			ApplicationDTO:   appuc.ToDTO(a),
			ApplicantName:    applicant.FullName,
			ApplicantCountry: applicant.Country,
		}
		if authority.Decides(actor.Role, a.Amount, a.RequiredLevel, *cfg) {
			item.CanApprove = true
			if cfg.RequireGuarantorConsensus {
				gs, err := u.repos.Guarantors.ListByApplication(ctx, a.ID)
				if err != nil {
					return nil, err
				}
				if !guarantor.Consensus(gs) {
					item.CanApprove = false
					item.ApprovalRestriction = restrictionConsent
				}
			}
			out = append(out, item)
			continue
		}
		if in.IncludeRestricted {
			item.ApprovalRestriction = fmt.Sprintf("requires %s approval", effectiveLevel(a, *cfg))
			out = append(out, item)
		}
	}
	return out, nil
}

// effectiveLevel is the higher of the stored level and what the current ceilings demand.
func effectiveLevel(a *domain.Application, cfg sysconfig.SystemConfig) role.Role {
	level := authority.RequiredLevel(a.Amount, cfg)
	if a.RequiredLevel.Rank() > level.Rank() {
		return a.RequiredLevel
	}
	return level
}

func (u *Usecase) applicants(ctx context.Context, apps []domain.Application) (map[string]*member.Member, error) {
	ids := make([]string, 0, len(apps))
	seen := map[string]bool{}
	for _, a := range apps {
		if !seen[a.MemberID] {
			seen[a.MemberID] = true
			ids = append(ids, a.MemberID)
		}
	}
	ms, err := u.repos.Members.GetByMemberIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*member.Member, len(ms))
	for i := range ms {
		out[ms[i].MemberID] = &ms[i]
	}
	return out, nil
}

// expectedVersion returns the caller's version or the one visible right now.
func (u *Usecase) expectedVersion(ctx context.Context, applicationID string, given int64) (int64, error) {
	if given > 0 {
		return given, nil
	}
	a, err := u.repos.Applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return 0, workflow.NotFound(err, "application", applicationID)
	}
	return a.Version, nil
}

// reviewer resolves the caller inside the tx and checks jurisdiction over the applicant.
func reviewer(ctx context.Context, r uow.Repos, actorID string, a *domain.Application) (*member.Member, error) {
	actor, err := workflow.ResolveActor(ctx, r.Members, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsReviewer() {
		return nil, apperr.NotAuthorized("only reviewers may act on applications")
	}
	if actor.MemberID == a.MemberID {
		return nil, apperr.NotAuthorized("reviewers cannot decide their own application")
	}
	applicant, err := r.Members.GetByMemberID(ctx, a.MemberID)
	if err != nil {
		return nil, err
	}
	if !workflow.InScope(actor, applicant) {
		return nil, apperr.NotAuthorized("application %s is outside your country", a.ApplicationID)
	}
	return actor, nil
}

// Act applies one reviewer action under the per-application version check.
func (u *Usecase) Act(ctx context.Context, in ActInput) (*appuc.ApplicationDTO, error) {
	if !in.Action.ReviewerAction() {
		return nil, apperr.Validation("unsupported action %q", in.Action)
	}
	if in.RecommendedAmount.Valid {
		if in.Action != domain.ActionApprove {
			return nil, apperr.Validation("recommended_amount only applies to approve")
		}
		rec := in.RecommendedAmount.Decimal
		if !rec.IsPositive() || !rec.Equal(rec.Round(2)) {
			return nil, apperr.Validation("recommended_amount must be positive with at most 2 decimal places")
		}
	}
	expected, err := u.expectedVersion(ctx, in.ApplicationID, in.Version)
	if err != nil {
		return nil, err
	}

	var dto appuc.ApplicationDTO
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		actor, err := reviewer(ctx, r, in.ActorID, a)
		if err != nil {
			return err
		}
		if a.Version != expected {
			return apperr.ConcurrentModification("application", a.ApplicationID)
		}
		cfg, err := r.Config.Get(ctx)
		if err != nil {
			return err
		}

		rec := domain.Decision{
			ActorID:    actor.MemberID,
			ActorRole:  actor.Role,
			Action:     in.Action,
			Notes:      in.Notes,
			Conditions: in.Conditions,
		}
		switch in.Action {
		case domain.ActionApprove:
			decided := a.DecidedAmount(in.RecommendedAmount)
			if !authority.Decides(actor.Role, decided, a.RequiredLevel, *cfg) {
				return apperr.InsufficientAuthority("%s cannot approve %s at level %s",
					actor.Role, decided.StringFixed(2), a.RequiredLevel)
			}
			if cfg.RequireGuarantorConsensus {
				gs, err := r.Guarantors.ListByApplication(ctx, a.ID)
				if err != nil {
					return err
				}
				if !guarantor.Consensus(gs) {
					return apperr.GuarantorConsensusRequired()
				}
			}
			rec.RecommendedAmount = in.RecommendedAmount
			approved := a.Amount
			if in.RecommendedAmount.Valid {
				approved = in.RecommendedAmount.Decimal
			}
			rec.Amount = decimal.NewNullDecimal(approved)

		case domain.ActionReject:
			if !authority.Decides(actor.Role, a.Amount, a.RequiredLevel, *cfg) {
				return apperr.InsufficientAuthority("%s cannot reject %s at level %s",
					actor.Role, a.Amount.StringFixed(2), a.RequiredLevel)
			}

		case domain.ActionEscalate:
			if a.RequiredLevel == role.GeneralAdmin {
				return apperr.AlreadyAtTop()
			}
			if !authority.Admits(actor.Role, a.RequiredLevel) {
				return apperr.InsufficientAuthority("%s cannot escalate from level %s", actor.Role, a.RequiredLevel)
			}
			next, ok := authority.Next(a.RequiredLevel)
			if !ok {
				return apperr.AlreadyAtTop()
			}
			rec.ToLevel = next

		default:
			if !authority.Decides(actor.Role, a.Amount, a.RequiredLevel, *cfg) {
				return apperr.InsufficientAuthority("application %s is not in your queue", a.ApplicationID)
			}
		}

		if err := workflow.Commit(ctx, r, a, &rec, expected, u.now()); err != nil {
			return err
		}
		dto = appuc.ToDTO(a)
		return nil
	})
	if err != nil {
		return nil, workflow.NotFound(err, "application", in.ApplicationID)
	}
	u.log.InfoContext(ctx, "application decision recorded",
		"application_id", dto.ApplicationID,
		"action", in.Action,
		"actor_id", in.ActorID,
		"status", dto.Status,
		"version", dto.Version)
	return &dto, nil
}

// Disburse releases an approved application's funds and materializes the schedule.
func (u *Usecase) Disburse(ctx context.Context, in DisburseInput) (*DisbursementDTO, error) {
	if in.Amount.Valid && (!in.Amount.Decimal.IsPositive() || !in.Amount.Decimal.Equal(in.Amount.Decimal.Round(2))) {
		return nil, apperr.Validation("amount must be positive with at most 2 decimal places")
	}
	expected, err := u.expectedVersion(ctx, in.ApplicationID, in.Version)
	if err != nil {
		return nil, err
	}

	var out *DisbursementDTO
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		actor, err := workflow.ResolveActor(ctx, r.Members, in.ActorID)
		if err != nil {
			return err
		}
		if !actor.Role.AtLeast(role.FundAdmin) {
			return apperr.NotAuthorized("only fund admins and above may disburse")
		}
		if a.Version != expected {
			return apperr.ConcurrentModification("application", a.ApplicationID)
		}
		if a.Status != domain.StatusApproved {
			return apperr.InvalidTransition("cannot disburse a %s application", a.Status)
		}

		amount := a.Amount
		if a.ApprovedAmount.Valid {
			amount = a.ApprovedAmount.Decimal
		}
		if in.Amount.Valid {
			amount = in.Amount.Decimal
		}
		now := u.now().UTC()
		items, err := repayment.Generate(amount, a.DurationMonths, now)
		if err != nil {
			return err
		}

		rec := domain.Decision{
			ActorID:   actor.MemberID,
			ActorRole: actor.Role,
			Action:    domain.ActionDisburse,
			Amount:    decimal.NewNullDecimal(amount),
		}
		a.DisbursedAt = &now
		if err := workflow.Commit(ctx, r, a, &rec, expected, now); err != nil {
			return err
		}
		for i := range items {
			items[i].InstallmentID = id.NewID32()
			items[i].ApplicationID = a.ID
		}
		if err := r.Installments.CreateBatch(ctx, items); err != nil {
			return err
		}
		out = &DisbursementDTO{Application: appuc.ToDTO(a), Installments: items}
		return nil
	})
	if err != nil {
		return nil, workflow.NotFound(err, "application", in.ApplicationID)
	}
	u.log.InfoContext(ctx, "application disbursed",
		"application_id", in.ApplicationID,
		"amount", out.Application.DisbursedAmount.Decimal.StringFixed(2),
		"installments", len(out.Installments))
	return out, nil
}
