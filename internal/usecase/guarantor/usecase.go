package guarantor

import (
	"context"
	"log/slog"
	"time"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	domain "mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/workflow"
)

type Usecase struct {
	repos uow.Repos
	uow   uow.UnitOfWork
	log   *slog.Logger
	now   func() time.Time
}

// NewUsecase: repos serve plain reads, the UoW serves writes.
func NewUsecase(repos uow.Repos, tx uow.UnitOfWork, log *slog.Logger) *Usecase {
	return &Usecase{repos: repos, uow: tx, log: logging.OrDiscard(log), now: time.Now}
}

// WithClock overrides the time source, for tests.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// Eligible lists members who may guarantee the caller's applications.
func (u *Usecase) Eligible(ctx context.Context, actorID, country string) ([]EligibleDTO, error) {
	actor, err := workflow.ResolveActor(ctx, u.repos.Members, actorID)
	if err != nil {
		return nil, err
	}
	cfg, err := u.repos.Config.Get(ctx)
	if err != nil {
		return nil, err
	}
	members, err := u.repos.Members.ListActive(ctx, country)
	if err != nil {
		return nil, err
	}
	out := make([]EligibleDTO, 0, len(members))
	for _, m := range members {
		if m.MemberID == actor.MemberID {
			continue
		}
		total, err := u.repos.Members.CompletedDeposits(ctx, m.MemberID)
		if err != nil {
			return nil, err
		}
		if total.LessThan(cfg.MinimumDepositForGuarantor) {
			continue
		}
		out = append(out, EligibleDTO{MemberID: m.MemberID, FullName: m.FullName, Country: m.Country, TotalDeposits: total})
	}
	return out, nil
}

// Attach lets the applicant add guarantors while the application is still open.
func (u *Usecase) Attach(ctx context.Context, in AttachInput) ([]AssignmentDTO, error) {
	if len(in.Guarantors) == 0 {
		return nil, apperr.Validation("at least one guarantor is required")
	}
	var out []AssignmentDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *application.Application) error {
		if _, err := workflow.ResolveActor(ctx, r.Members, in.ActorID); err != nil {
			return err
		}
		if a.MemberID != in.ActorID {
			return apperr.NotAuthorized("only the applicant may add guarantors")
		}
		if !a.Status.Open() {
			return apperr.InvalidTransition("cannot add guarantors to a %s application", a.Status)
		}
		cfg, err := r.Config.Get(ctx)
		if err != nil {
			return err
		}
		added, err := AttachWithin(ctx, r, cfg, a, in.Guarantors, u.now())
		if err != nil {
			return err
		}
		out = ToDTOs(added, a.ApplicationID)
		return nil
	})
	if err != nil {
		return nil, workflow.NotFound(err, "application", in.ApplicationID)
	}
	u.log.InfoContext(ctx, "guarantors attached", "application_id", in.ApplicationID, "count", len(out))
	return out, nil
}

// Respond records the named guarantor's accept or decline. Exactly one answer wins.
func (u *Usecase) Respond(ctx context.Context, in RespondInput) (*AssignmentDTO, error) {
	if !in.Decision.Decision() {
		return nil, apperr.Validation("decision must be accepted or declined")
	}
	var dto *AssignmentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Guarantors.GetByAssignmentID(ctx, in.AssignmentID)
		if err != nil {
			return workflow.NotFound(err, "guarantor request", in.AssignmentID)
		}
		if g.GuarantorID != in.ActorID {
			return apperr.NotAuthorized("only the named guarantor may respond")
		}
		if g.Status != domain.StatusPending {
			return apperr.AlreadyResponded(in.AssignmentID)
		}
		at := u.now().UTC()
		ok, err := r.Guarantors.Respond(ctx, g.ID, in.Decision, at)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.AlreadyResponded(in.AssignmentID)
		}
		app, err := r.Applications.GetByID(ctx, g.ApplicationID)
		if err != nil {
			return err
		}
		g.Status = in.Decision
		g.RespondedAt = &at
		d := toDTO(*g, app.ApplicationID)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "guarantor responded", "assignment_id", in.AssignmentID, "decision", in.Decision)
	return dto, nil
}

// Requests lists the caller's guarantor requests, newest first.
func (u *Usecase) Requests(ctx context.Context, actorID string) ([]RequestDTO, error) {
	if _, err := workflow.ResolveActor(ctx, u.repos.Members, actorID); err != nil {
		return nil, err
	}
	items, err := u.repos.Guarantors.ListByGuarantor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(items))
	for _, g := range items {
		app, err := u.repos.Applications.GetByID(ctx, g.ApplicationID)
		if err != nil {
			return nil, err
		}
		applicant, err := u.repos.Members.GetByMemberID(ctx, app.MemberID)
		if err != nil {
			return nil, err
		}
		out = append(out, RequestDTO{
			AssignmentDTO:     toDTO(g, app.ApplicationID),
			ApplicantID:       app.MemberID,
			ApplicantName:     applicant.FullName,
			Amount:            app.Amount,
			Purpose:           app.Purpose,
			ApplicationStatus: string(app.Status),
		})
	}
	return out, nil
}
