package mysql

import (
	"context"
	"time"

	guarantorDomain "mutualfund-backend/internal/domain/guarantor"

	"gorm.io/gorm"
)

type GuarantorRepository struct{ db *gorm.DB }

func NewGuarantorRepository(db *gorm.DB) *GuarantorRepository { return &GuarantorRepository{db: db} }

func (r *GuarantorRepository) Create(ctx context.Context, a *guarantorDomain.Assignment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *GuarantorRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]guarantorDomain.Assignment, error) {
	var out []guarantorDomain.Assignment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) ListByGuarantor(ctx context.Context, guarantorID string) ([]guarantorDomain.Assignment, error) {
	var out []guarantorDomain.Assignment
	res := r.db.WithContext(ctx).
		Where("guarantor_id = ?", guarantorID).
		Order("requested_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *GuarantorRepository) GetByAssignmentID(ctx context.Context, assignmentID string) (*guarantorDomain.Assignment, error) {
	var out guarantorDomain.Assignment
	res := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).First(&out)
	return &out, res.Error
}

// Respond is a compare-and-set on status so two answers cannot both land.
func (r *GuarantorRepository) Respond(ctx context.Context, id uint64, status guarantorDomain.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&guarantorDomain.Assignment{}).
		Where("id = ? AND status = ?", id, guarantorDomain.StatusPending).
		Updates(map[string]any{"status": status, "responded_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
