package repayment

import (
	"context"
	"time"
)

type Repository interface {
	CreateBatch(ctx context.Context, items []Installment) error
	ListByApplication(ctx context.Context, applicationID uint64) ([]Installment, error)
	// ListByApplications returns the installments of several applications, earliest due first.
	ListByApplications(ctx context.Context, applicationIDs []uint64) ([]Installment, error)
	GetByInstallmentID(ctx context.Context, installmentID string) (*Installment, error)
	// MarkPaid moves an unpaid or overdue installment to paid; ok is false if it was already paid.
	MarkPaid(ctx context.Context, id uint64, at time.Time) (ok bool, err error)
	// ListPastDue returns unpaid installments whose due date is before now.
	ListPastDue(ctx context.Context, now time.Time, limit int) ([]Installment, error)
	MarkOverdue(ctx context.Context, ids []uint64) (int64, error)
}
