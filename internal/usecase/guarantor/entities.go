package guarantor

import (
	"time"

	domain "mutualfund-backend/internal/domain/guarantor"

	"github.com/shopspring/decimal"
)

// Request names one guarantor. A nil Share takes an equal part of what is still uncovered.
type Request struct {
	MemberID string
	Share    *decimal.Decimal
}

type AttachInput struct {
	ActorID       string
	ApplicationID string
	Guarantors    []Request
}

type RespondInput struct {
	ActorID      string
	AssignmentID string
	Decision     domain.Status
}

type AssignmentDTO struct {
	AssignmentID  string          `json:"assignment_id"`
	ApplicationID string          `json:"application_id"`
	GuarantorID   string          `json:"guarantor_id"`
	Share         decimal.Decimal `json:"share"`
	Status        domain.Status   `json:"status"`
	RequestedAt   time.Time       `json:"requested_at"`
	RespondedAt   *time.Time      `json:"responded_at,omitempty"`
}

// RequestDTO is a guarantor request as the named guarantor sees it.
type RequestDTO struct {
	AssignmentDTO
	ApplicantID       string          `json:"applicant_id"`
	ApplicantName     string          `json:"applicant_name"`
	Amount            decimal.Decimal `json:"amount"`
	Purpose           string          `json:"purpose"`
	ApplicationStatus string          `json:"application_status"`
}

type EligibleDTO struct {
	MemberID      string          `json:"member_id"`
	FullName      string          `json:"full_name"`
	Country       string          `json:"country"`
	TotalDeposits decimal.Decimal `json:"total_deposits"`
}

func toDTO(a domain.Assignment, applicationID string) AssignmentDTO {
	return AssignmentDTO{
		AssignmentID:  a.AssignmentID,
		ApplicationID: applicationID,
		GuarantorID:   a.GuarantorID,
		Share:         a.Share,
		Status:        a.Status,
		RequestedAt:   a.RequestedAt,
		RespondedAt:   a.RespondedAt,
	}
}

// ToDTOs converts assignments of one application.
func ToDTOs(items []domain.Assignment, applicationID string) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(items))
	for _, a := range items {
		out = append(out, toDTO(a, applicationID))
	}
	return out
}
