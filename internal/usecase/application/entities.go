package application

import (
	"time"

	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/priority"
	"mutualfund-backend/internal/domain/role"
	"mutualfund-backend/internal/usecase/guarantor"

	"github.com/shopspring/decimal"
)

type SubmitInput struct {
	ActorID        string
	Amount         decimal.Decimal
	DurationMonths int
	Purpose        string
	Description    string
	Guarantors     []guarantor.Request
}

type ApplicationDTO struct {
	ApplicationID    string              `json:"application_id"`
	MemberID         string              `json:"member_id"`
	Amount           decimal.Decimal     `json:"amount"`
	DurationMonths   int                 `json:"duration_months"`
	Purpose          string              `json:"purpose"`
	Description      string              `json:"description,omitempty"`
	PriorityScore    int                 `json:"priority_score"`
	PriorityBand     priority.Band       `json:"priority_band"`
	PreviousFinances int                 `json:"previous_finances"`
	Status           domain.Status       `json:"status"`
	RequiredLevel    role.Role           `json:"required_approval_level,omitempty"`
	ApprovedAmount   decimal.NullDecimal `json:"approved_amount"`
	DisbursedAmount  decimal.NullDecimal `json:"disbursed_amount"`
	DisbursedAt      *time.Time          `json:"disbursed_at,omitempty"`
	Version          int64               `json:"version"`
	SubmittedAt      time.Time           `json:"submitted_at"`
}

type DetailDTO struct {
	ApplicationDTO
	Guarantors []guarantor.AssignmentDTO `json:"guarantors"`
	History    []domain.Decision         `json:"history"`
}

// ToDTO adds the read-time priority band.
func ToDTO(a *domain.Application) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID:    a.ApplicationID,
		MemberID:         a.MemberID,
		Amount:           a.Amount,
		DurationMonths:   a.DurationMonths,
		Purpose:          a.Purpose,
		Description:      a.Description,
		PriorityScore:    a.PriorityScore,
		PriorityBand:     priority.BandOf(a.PriorityScore),
		PreviousFinances: a.PreviousFinances,
		Status:           a.Status,
		RequiredLevel:    a.RequiredLevel,
		ApprovedAmount:   a.ApprovedAmount,
		DisbursedAmount:  a.DisbursedAmount,
		DisbursedAt:      a.DisbursedAt,
		Version:          a.Version,
		SubmittedAt:      a.SubmittedAt,
	}
}
