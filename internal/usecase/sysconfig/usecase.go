package sysconfig

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/role"
	domain "mutualfund-backend/internal/domain/sysconfig"
	"mutualfund-backend/internal/domain/uow"
	"mutualfund-backend/internal/infrastructure/logging"
	"mutualfund-backend/internal/usecase/workflow"

	"gorm.io/gorm"
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

// Seed writes the defaults on first start. An existing row is left alone.
func (u *Usecase) Seed(ctx context.Context, d domain.Defaults) error {
	c := d.Config(u.now())
	if err := c.Validate(); err != nil {
		return err
	}
	return u.repos.Config.Seed(ctx, &c)
}

// Get returns the latest committed config to any reviewer.
func (u *Usecase) Get(ctx context.Context, actorID string) (*domain.SystemConfig, error) {
	actor, err := workflow.ResolveActor(ctx, u.repos.Members, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsReviewer() {
		return nil, apperr.NotAuthorized("only reviewers may read system configuration")
	}
	c, err := u.repos.Config.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "system configuration has not been seeded", apperr.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// Update applies a partial change. General admins only; concurrent writers conflict.
func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*domain.SystemConfig, error) {
	if in.Patch.Empty() {
		return nil, apperr.Validation("no configuration fields to update")
	}
	if err := in.Patch.Validate(); err != nil {
		return nil, err
	}
	var out *domain.SystemConfig
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := workflow.ResolveActor(ctx, r.Members, in.ActorID)
		if err != nil {
			return err
		}
		if actor.Role != role.GeneralAdmin {
			return apperr.NotAuthorized("only general admins may change system configuration")
		}
		cur, err := r.Config.Get(ctx)
		if err != nil {
			return err
		}
		if in.Version != nil && *in.Version != cur.Version {
			return apperr.ConcurrentModification("system configuration", "")
		}
		next := cur.Apply(in.Patch)
		if err := next.Validate(); err != nil {
			return err
		}
		next.UpdatedAt = u.now().UTC()
		next.UpdatedBy = actor.MemberID
		ok, err := r.Config.UpdateVersioned(ctx, &next, cur.Version)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.ConcurrentModification("system configuration", "")
		}
		out = &next
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "system configuration updated", "actor_id", in.ActorID, "version", out.Version)
	return out, nil
}
