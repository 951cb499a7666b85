package guarantormock

import (
	"context"
	"time"

	domain "mutualfund-backend/internal/domain/guarantor"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, a *domain.Assignment) error
	ListByApplicationFn func(ctx context.Context, applicationID uint64) ([]domain.Assignment, error)
	ListByGuarantorFn   func(ctx context.Context, guarantorID string) ([]domain.Assignment, error)
	GetByAssignmentIDFn func(ctx context.Context, assignmentID string) (*domain.Assignment, error)
	RespondFn           func(ctx context.Context, id uint64, status domain.Status, at time.Time) (bool, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByApplication(ctx context.Context, applicationID uint64) ([]domain.Assignment, error) {
	if m.ListByApplicationFn != nil {
		return m.ListByApplicationFn(ctx, applicationID)
	}
	return nil, nil
}

func (m *Repo) ListByGuarantor(ctx context.Context, guarantorID string) ([]domain.Assignment, error) {
	if m.ListByGuarantorFn != nil {
		return m.ListByGuarantorFn(ctx, guarantorID)
	}
	return nil, nil
}

func (m *Repo) GetByAssignmentID(ctx context.Context, assignmentID string) (*domain.Assignment, error) {
	if m.GetByAssignmentIDFn != nil {
		return m.GetByAssignmentIDFn(ctx, assignmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Respond(ctx context.Context, id uint64, status domain.Status, at time.Time) (bool, error) {
	if m.RespondFn != nil {
		return m.RespondFn(ctx, id, status, at)
	}
	return true, nil
}
