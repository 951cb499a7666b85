package guarantor

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Assignment) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Assignment, error)
	ListByGuarantor(ctx context.Context, guarantorID string) ([]Assignment, error)
	GetByAssignmentID(ctx context.Context, assignmentID string) (*Assignment, error)
	// Respond sets the decision only while the assignment is pending; ok is false otherwise.
	Respond(ctx context.Context, id uint64, status Status, at time.Time) (ok bool, err error)
}
