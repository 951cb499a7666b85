package uow

import (
	"context"

	"mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/guarantor"
	"mutualfund-backend/internal/domain/member"
	"mutualfund-backend/internal/domain/repayment"
	"mutualfund-backend/internal/domain/sysconfig"
)

// Repos are bound to one transaction. Reads inside a tx must go through them.
type Repos struct {
	Applications application.Repository
	Decisions    application.DecisionRepository
	Guarantors   guarantor.Repository
	Installments repayment.Repository
	Members      member.Directory
	Config       sysconfig.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
