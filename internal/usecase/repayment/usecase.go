package repayment

import (
	"context"
	"log/slog"
	"time"

	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/repayment"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/workflow"

	"github.com/shopspring/decimal"
)

// sweepBatch bounds one overdue pass; the next cron tick picks up the rest.
const sweepBatch = 500

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

// Schedule returns the installments of a disbursed application.
func (u *Usecase) Schedule(ctx context.Context, actorID, applicationID string) (*ScheduleDTO, error) {
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
	items, err := u.repos.Installments.ListByApplication(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	outstanding := decimal.Zero
	for _, it := range items {
		if it.Status != repayment.StatusPaid {
			outstanding = outstanding.Add(it.Amount)
		}
	}
	return &ScheduleDTO{
		ApplicationID:     a.ApplicationID,
		ApplicationStatus: a.Status,
		Total:             repayment.Total(items),
		Outstanding:       outstanding,
		Installments:      items,
	}, nil
}

// ListMine returns the caller's installments across all of their applications, earliest due first.
func (u *Usecase) ListMine(ctx context.Context, actorID string) (*MemberRepaymentsDTO, error) {
	actor, err := workflow.ResolveActor(ctx, u.repos.Members, actorID)
	if err != nil {
		return nil, err
	}
	apps, err := u.repos.Applications.ListByMember(ctx, actor.MemberID)
	if err != nil {
		return nil, err
	}
	publicID := make(map[uint64]string, len(apps))
	ids := make([]uint64, 0, len(apps))
	for _, a := range apps {
		if a.DisbursedAt == nil {
			continue
		}
		publicID[a.ID] = a.ApplicationID
		ids = append(ids, a.ID)
	}
	items, err := u.repos.Installments.ListByApplications(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := &MemberRepaymentsDTO{Outstanding: decimal.Zero, Items: make([]MemberInstallment, 0, len(items))}
	for _, it := range items {
		if it.Status != repayment.StatusPaid {
			out.Outstanding = out.Outstanding.Add(it.Amount)
		}
		if it.Status == repayment.StatusOverdue {
			out.Overdue++
		}
		out.Items = append(out.Items, MemberInstallment{Installment: it, ApplicationID: publicID[it.ApplicationID]})
	}
	return out, nil
}

// statusAfterPayment derives the application status from its installments.
func statusAfterPayment(items []repayment.Installment) domain.Status {
	allPaid := true
	for _, it := range items {
		if it.Status == repayment.StatusOverdue {
			return domain.StatusOverdue
		}
		if it.Status != repayment.StatusPaid {
			allPaid = false
		}
	}
	if allPaid {
		return domain.StatusCompleted
	}
	return domain.StatusRepaying
}

// Pay records an installment as paid and moves the application along repaying/completed.
func (u *Usecase) Pay(ctx context.Context, in PayInput) (*PaymentDTO, error) {
	it, err := u.repos.Installments.GetByInstallmentID(ctx, in.InstallmentID)
	if err != nil {
		return nil, workflow.NotFound(err, "installment", in.InstallmentID)
	}
	app, err := u.repos.Applications.GetByID(ctx, it.ApplicationID)
	if err != nil {
		return nil, err
	}

	var out *PaymentDTO
	err = u.uow.WithinApplicationTx(ctx, app.ApplicationID, func(r uow.Repos, a *domain.Application) error {
		actor, err := workflow.ResolveActor(ctx, r.Members, in.ActorID)
		if err != nil {
			return err
		}
		if !actor.Role.AtLeast(role.FundAdmin) {
			return apperr.NotAuthorized("only fund admins and above may record payments")
		}
		cur, err := r.Installments.GetByInstallmentID(ctx, in.InstallmentID)
		if err != nil {
			return err
		}
		if !cur.CanPay() {
			return apperr.InvalidTransition("installment %s is already paid", in.InstallmentID)
		}
		now := u.now().UTC()
		ok, err := r.Installments.MarkPaid(ctx, cur.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InvalidTransition("installment %s is already paid", in.InstallmentID)
		}
		items, err := r.Installments.ListByApplication(ctx, a.ID)
		if err != nil {
			return err
		}
		rec := domain.Decision{
			ActorID:      actor.MemberID,
			ActorRole:    actor.Role,
			Action:       domain.ActionRepayment,
			Amount:       decimal.NewNullDecimal(cur.Amount),
			ResultStatus: statusAfterPayment(items),
			Notes:        "installment " + cur.InstallmentID,
		}
		if err := workflow.Commit(ctx, r, a, &rec, a.Version, now); err != nil {
			return err
		}
		cur.Status = repayment.StatusPaid
		cur.PaidAt = &now
		out = &PaymentDTO{Installment: *cur, ApplicationID: a.ApplicationID, ApplicationStatus: a.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "installment paid",
		"installment_id", in.InstallmentID,
		"application_id", out.ApplicationID,
		"status", out.ApplicationStatus)
	return out, nil
}

// SweepOverdue marks unpaid installments past due and flags their applications overdue.
func (u *Usecase) SweepOverdue(ctx context.Context) (*SweepResult, error) {
	now := u.now().UTC()
	due, err := u.repos.Installments.ListPastDue(ctx, now, sweepBatch)
	if err != nil {
		return nil, err
	}
	byApp := map[uint64][]uint64{}
	order := []uint64{}
	for _, it := range due {
		if _, ok := byApp[it.ApplicationID]; !ok {
			order = append(order, it.ApplicationID)
		}
		byApp[it.ApplicationID] = append(byApp[it.ApplicationID], it.ID)
	}

	res := &SweepResult{}
	for _, appID := range order {
		app, err := u.repos.Applications.GetByID(ctx, appID)
		if err != nil {
			return res, err
		}
		err = u.uow.WithinApplicationTx(ctx, app.ApplicationID, func(r uow.Repos, a *domain.Application) error {
			n, err := r.Installments.MarkOverdue(ctx, byApp[appID])
			if err != nil {
				return err
			}
			res.Installments += int(n)
			if n == 0 || a.Status == domain.StatusOverdue || !a.Status.InRepayment() {
				return nil
			}
			rec := domain.Decision{
				ActorID:   workflow.SystemActorID,
				ActorRole: role.System,
				Action:    domain.ActionOverdue,
			}
			if err := workflow.Commit(ctx, r, a, &rec, a.Version, now); err != nil {
				return err
			}
			res.Applications++
			return nil
		})
		if err != nil {
			return res, err
		}
	}
	u.log.InfoContext(ctx, "overdue sweep finished",
		"installments", res.Installments,
		"applications", res.Applications)
	return res, nil
}
