// Package workflow holds the steps every application usecase shares: resolving the caller,
// deciding who may read an application, and committing one decision under the version check.
package workflow

import (
	"context"
	"errors"
	"time"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/apperr"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/domain/uow"

	"gorm.io/gorm"
)

// SystemActorID signs records written by the scheduler.
const SystemActorID = "system"

// ResolveActor loads the calling member. Unknown or inactive callers are not authorized.
func ResolveActor(ctx context.Context, dir member.Directory, memberID string) (*member.Member, error) {
	if memberID == "" {
		return nil, apperr.NotAuthorized("missing caller identity")
	}
	m, err := dir.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotAuthorized("unknown member %s", memberID)
		}
		return nil, err
	}
	if !m.Active {
		return nil, apperr.NotAuthorized("member %s is inactive", memberID)
	}
	return m, nil
}

// InScope reports whether a reviewer's jurisdiction covers the applicant.
// Country coordinators only see their own country.
func InScope(actor, applicant *member.Member) bool {
	if !actor.Role.IsReviewer() {
		return false
	}
	if actor.Role == role.CountryCoordinator {
		return applicant != nil && applicant.Country == actor.Country
	}
	return true
}

// CanView: the applicant, or a reviewer whose scope covers the applicant.
func CanView(actor, applicant *member.Member, a *application.Application) bool {
	return actor.MemberID == a.MemberID || InScope(actor, applicant)
}

// NotFound maps gorm's missing-row error to the domain kind and passes anything else through.
func NotFound(err error, entity, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}

// Commit folds rec into a, writes the new state if the stored version still equals expected,
// and appends rec to the log. a and rec are updated in place.
func Commit(ctx context.Context, r uow.Repos, a *application.Application, rec *application.Decision, expected int64, now time.Time) error {
	if a.Version != expected {
		return apperr.ConcurrentModification("application", a.ApplicationID)
	}
	rec.ApplicationID = a.ID
	rec.Seq = a.Version + 1
	rec.CreatedAt = now.UTC()

	next, err := application.Apply(a.State(), *rec)
	if err != nil {
		return err
	}
	rec.ResultStatus = next.Status
	a.SetState(next)

	ok, err := r.Applications.UpdateVersioned(ctx, a, expected)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ConcurrentModification("application", a.ApplicationID)
	}
	return r.Decisions.Append(ctx, rec)
}
