package approval

import (
	domain "mutualfund-backend/internal/domain/application"
	"mutualfund-backend/internal/domain/repayment"
	appuc "mutualfund-backend/internal/usecase/application"

	"github.com/shopspring/decimal"
)

type QueueInput struct {
	ActorID           string
	IncludeRestricted bool
}

type QueueItem struct {
	appuc.ApplicationDTO
	ApplicantName       string `json:"applicant_name"`
	ApplicantCountry    string `json:"applicant_country"`
	CanApprove          bool   `json:"can_approve"`
	ApprovalRestriction string `json:"approval_restriction,omitempty"`
}

// ActInput carries one reviewer action. Version 0 means "whatever is current", taken from
// a fresh read before locking; a rival commit that lands before that read is then judged
// against its new status rather than reported as a concurrent modification.
type ActInput struct {
	ActorID           string
	ApplicationID     string
	Action            domain.Action
	Notes             string
	Conditions        string
	RecommendedAmount decimal.NullDecimal
	Version           int64
}

type DisburseInput struct {
	ActorID       string
	ApplicationID string
	Amount        decimal.NullDecimal
	Version       int64
}

type DisbursementDTO struct {
	Application  appuc.ApplicationDTO    `json:"application"`
	Installments []repayment.Installment `json:"installments"`
}
