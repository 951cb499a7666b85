package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/authority"
	"mutualfund-backend/internal/domain/priority"
	"mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/guarantor"
	"mutualfund-backend/internal/usecase/workflow"
	"mutualfund-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *slog.Logger
	now   func() time.Time
}

func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *slog.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: logging.OrDiscard(log), now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func validateSubmit(in SubmitInput, cfg *sysconfig.SystemConfig) error {
	switch {
	case !in.Amount.IsPositive():
		return apperr.Validation("amount must be positive")
	case !in.Amount.Equal(in.Amount.Round(2)):
		return apperr.Validation("amount must have at most 2 decimal places")
	case in.DurationMonths <= 0:
		return apperr.Validation("duration_months must be positive")
	case strings.TrimSpace(in.Purpose) == "":
		return apperr.Validation("purpose is required")
	case cfg.MaxLoanAmount.Valid && in.Amount.GreaterThan(cfg.MaxLoanAmount.Decimal):
		return apperr.Validation("amount %s exceeds the maximum of %s",
			in.Amount.StringFixed(2), cfg.MaxLoanAmount.Decimal.StringFixed(2))
	case cfg.MaxLoanDurationMonths != nil && in.DurationMonths > *cfg.MaxLoanDurationMonths:
		return apperr.Validation("duration %d exceeds the maximum of %d months", in.DurationMonths, *cfg.MaxLoanDurationMonths)
	}
	return nil
}

// Submit creates an application, stamps its score and required level, and attaches any
// guarantors in the same transaction.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*DetailDTO, error) {
	var dto *DetailDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := workflow.ResolveActor(ctx, r.Members, in.ActorID)
		if err != nil {
			return err
		}
		cfg, err := r.Config.Get(ctx)
		if err != nil {
			return err
		}
		if err := validateSubmit(in, cfg); err != nil {
			return err
		}
		funded, err := r.Applications.CountFunded(ctx, actor.MemberID)
		if err != nil {
			return err
		}

		now := u.now().UTC()
		a := &domain.Application{
			ApplicationID:    id.NewID32(),
			MemberID:         actor.MemberID,
			Amount:           in.Amount,
			DurationMonths:   in.DurationMonths,
			Purpose:          strings.TrimSpace(in.Purpose),
			Description:      in.Description,
			PriorityScore:    priority.Score(priority.History{FundedCount: int(funded)}, *cfg),
			PreviousFinances: int(funded),
			SubmittedAt:      now,
		}
		rec := domain.Decision{
			Seq:       1,
			ActorID:   actor.MemberID,
			ActorRole: actor.Role,
			Action:    domain.ActionSubmit,
			Amount:    decimal.NewNullDecimal(in.Amount),
			ToLevel:   authority.RequiredLevel(in.Amount, *cfg),
			CreatedAt: now,
		}
		st, err := domain.Apply(domain.State{}, rec)
		if err != nil {
			return err
		}
		a.SetState(st)
		rec.ResultStatus = st.Status

		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		rec.ApplicationID = a.ID
		if err := r.Decisions.Append(ctx, &rec); err != nil {
			return err
		}
		attached, err := guarantor.AttachWithin(ctx, r, cfg, a, in.Guarantors, now)
		if err != nil {
			return err
		}
		dto = &DetailDTO{
			ApplicationDTO: ToDTO(a),
			Guarantors:     guarantor.ToDTOs(attached, a.ApplicationID),
			History:        []domain.Decision{rec},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "application submitted",
		"application_id", dto.ApplicationID,
		"member_id", dto.MemberID,
		"amount", dto.Amount.StringFixed(2),
		"priority_score", dto.PriorityScore,
		"required_level", dto.RequiredLevel)
	return dto, nil
}

// Get returns an application with its guarantors and decision history.
// Visible to the applicant and to reviewers whose scope covers the applicant.
func (u *Usecase) Get(ctx context.Context, actorID, applicationID string) (*DetailDTO, error) {
	actor, err := workflow.ResolveActor(ctx, u.repos.Members, actorID)
	if err != nil {
		return nil, err
	}
	a, err := u.repos.Applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, workflow.NotFound(err, "application", applicationID)
	}
	applicant, err := u.repos.Members.GetByMemberID(ctx, a.MemberID)
	if err != nil {
		return nil, err
	}
	if !workflow.CanView(actor, applicant, a) {
		return nil, apperr.NotAuthorized("application %s is outside your scope", applicationID)
	}
	gs, err := u.repos.Guarantors.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	history, err := u.repos.Decisions.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return &DetailDTO{
		ApplicationDTO: ToDTO(a),
		Guarantors:     guarantor.ToDTOs(gs, a.ApplicationID),
		History:        history,
	}, nil
}

// ListMine returns the caller's applications, newest first.
func (u *Usecase) ListMine(ctx context.Context, actorID string) ([]ApplicationDTO, error) {
	if _, err := workflow.ResolveActor(ctx, u.repos.Members, actorID); err != nil {
		return nil, err
	}
	apps, err := u.repos.Applications.ListByMember(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, ToDTO(&apps[i]))
	}
	return out, nil
}
