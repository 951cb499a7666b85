package applicationmock

import (
	"context"

	domain "mutualfund-backend/internal/domain/application"
)

var (
	_ domain.Repository         = (*Repo)(nil)
	_ domain.DecisionRepository = (*DecisionRepo)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByIDFn                     func(ctx context.Context, id uint64) (*domain.Application, error)
	ListByMemberFn                func(ctx context.Context, memberID string) ([]domain.Application, error)
	ListOpenFn                    func(ctx context.Context) ([]domain.Application, error)
	CountFundedFn                 func(ctx context.Context, memberID string) (int64, error)
	UpdateVersionedFn             func(ctx context.Context, a *domain.Application, expected int64) (bool, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByMember(ctx context.Context, memberID string) ([]domain.Application, error) {
	if m.ListByMemberFn != nil {
		return m.ListByMemberFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOpen(ctx context.Context) ([]domain.Application, error) {
	if m.ListOpenFn != nil {
		return m.ListOpenFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) CountFunded(ctx context.Context, memberID string) (int64, error) {
	if m.CountFundedFn != nil {
		return m.CountFundedFn(ctx, memberID)
	}
	return 0, nil
}

func (m *Repo) UpdateVersioned(ctx context.Context, a *domain.Application, expected int64) (bool, error) {
	if m.UpdateVersionedFn != nil {
		return m.UpdateVersionedFn(ctx, a, expected)
	}
	return true, nil
}

// DecisionRepo records appended decisions unless AppendFn is set.
type DecisionRepo struct {
	AppendFn            func(ctx context.Context, d *domain.Decision) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]domain.Decision, error)
	Appended            []domain.Decision
}

func (m *DecisionRepo) Append(ctx context.Context, d *domain.Decision) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, d)
	}
	m.Appended = append(m.Appended, *d)
	return nil
}

func (m *DecisionRepo) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Decision, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return m.Appended, nil
}
