package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row until the surrounding tx ends.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	GetByID(ctx context.Context, id uint64) (*Application, error)
	ListByMember(ctx context.Context, memberID string) ([]Application, error)
	// ListOpen returns every application a reviewer could still decide, in queue order.
	ListOpen(ctx context.Context) ([]Application, error)
	CountFunded(ctx context.Context, memberID string) (int64, error)
	// UpdateVersioned persists a's state if the stored version is still expected.
	UpdateVersioned(ctx context.Context, a *Application, expected int64) (ok bool, err error)
}

type DecisionRepository interface {
	Append(ctx context.Context, d *Decision) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Decision, error)
}
