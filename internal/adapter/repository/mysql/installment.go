package mysql

import (
	"context"
	"time"

	repaymentDomain "mutualfund-backend/internal/domain/repayment"

	"gorm.io/gorm"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

func (r *InstallmentRepository) CreateBatch(ctx context.Context, items []repaymentDomain.Installment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *InstallmentRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]repaymentDomain.Installment, error) {
	var out []repaymentDomain.Installment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("seq ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) ListByApplications(ctx context.Context, applicationIDs []uint64) ([]repaymentDomain.Installment, error) {
	if len(applicationIDs) == 0 {
		return nil, nil
	}
	var out []repaymentDomain.Installment
	res := r.db.WithContext(ctx).
		Where("application_id IN ?", applicationIDs).
		Order("due_date ASC, application_id ASC, seq ASC").
		Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) GetByInstallmentID(ctx context.Context, installmentID string) (*repaymentDomain.Installment, error) {
	var out repaymentDomain.Installment
	res := r.db.WithContext(ctx).Where("installment_id = ?", installmentID).First(&out)
	return &out, res.Error
}

func (r *InstallmentRepository) MarkPaid(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Where("id = ? AND status IN ?", id, []repaymentDomain.Status{repaymentDomain.StatusUnpaid, repaymentDomain.StatusOverdue}).
		Updates(map[string]any{"status": repaymentDomain.StatusPaid, "paid_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *InstallmentRepository) ListPastDue(ctx context.Context, now time.Time, limit int) ([]repaymentDomain.Installment, error) {
	var out []repaymentDomain.Installment
	q := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", repaymentDomain.StatusUnpaid, now).
		Order("due_date ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	res := q.Find(&out)
	return out, res.Error
}

func (r *InstallmentRepository) MarkOverdue(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&repaymentDomain.Installment{}).
		Where("id IN ? AND status = ?", ids, repaymentDomain.StatusUnpaid).
		Update("status", repaymentDomain.StatusOverdue)
	return res.RowsAffected, res.Error
}
