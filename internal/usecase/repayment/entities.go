package repayment

import (
	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/repayment"

	"github.com/shopspring/decimal"
)

type PayInput struct {
	ActorID       string
	InstallmentID string
}

type ScheduleDTO struct {
	ApplicationID     string                  `json:"application_id"`
	ApplicationStatus domain.Status           `json:"application_status"`
	Total             decimal.Decimal         `json:"total"`
	Outstanding       decimal.Decimal         `json:"outstanding"`
	Installments      []repayment.Installment `json:"installments"`
}

type PaymentDTO struct {
	Installment       repayment.Installment `json:"installment"`
	ApplicationID     string                `json:"application_id"`
	ApplicationStatus domain.Status         `json:"application_status"`
}

// MemberInstallment is one installment in the caller's cross-application listing.
type MemberInstallment struct {
	repayment.Installment
	ApplicationID string `json:"application_id"`
}

type MemberRepaymentsDTO struct {
	Outstanding decimal.Decimal     `json:"outstanding"`
	Overdue     int                 `json:"overdue"`
	Items       []MemberInstallment `json:"items"`
}

type SweepResult struct {
	Installments int `json:"installments"`
	Applications int `json:"applications"`
}
