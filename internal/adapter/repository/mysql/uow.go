package mysql

import (
	"context"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos binds every repository to db; used by both tx and non-tx callers.
func Repos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: db},
		Decisions:    &DecisionRepository{db: db},
		Guarantors:   &GuarantorRepository{db: db},
		Installments: &InstallmentRepository{db: db},
		Members:      &MemberRepository{db: db},
		Config:       &ConfigRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Repos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := Repos(tx)
		// lock the application row up-front so transitions serialize
		a, err := r.Applications.GetByApplicationIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
