package mysql

import (
	"context"

	appDomain "mutualfund-backend/internal/domain/application"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	return &out, res.Error
}

// sqlite ignores the locking clause; MySQL takes a row lock until commit.
func (r *ApplicationRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *ApplicationRepository) ListByMember(ctx context.Context, memberID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("submitted_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListOpen(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status IN ?", appDomain.OpenStatuses).
		Order("priority_score DESC, submitted_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) CountFunded(ctx context.Context, memberID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&appDomain.Application{}).
		Where("member_id = ? AND status IN ?", memberID, appDomain.FundedStatuses).
		Count(&n)
	return n, res.Error
}

func (r *ApplicationRepository) UpdateVersioned(ctx context.Context, a *appDomain.Application, expected int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&appDomain.Application{}).
		Where("id = ? AND version = ?", a.ID, expected).
		Updates(map[string]any{
			"status":           a.Status,
			"required_level":   a.RequiredLevel,
			"approved_amount":  a.ApprovedAmount,
			"disbursed_amount": a.DisbursedAmount,
			"disbursed_at":     a.DisbursedAt,
			"version":          a.Version,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type DecisionRepository struct{ db *gorm.DB }

func NewDecisionRepository(db *gorm.DB) *DecisionRepository { return &DecisionRepository{db: db} }

func (r *DecisionRepository) Append(ctx context.Context, d *appDomain.Decision) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DecisionRepository) ListByApplication(ctx context.Context, applicationID uint64) ([]appDomain.Decision, error) {
	var out []appDomain.Decision
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("seq ASC").
		Find(&out)
	return out, res.Error
}
