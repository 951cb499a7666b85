package application

import (
	"time"

	"mutualfund-backend/internal/domain/role"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending                Status = "pending"
	StatusUnderReview            Status = "under_review"
	StatusRequiresHigherApproval Status = "requires_higher_approval"
	StatusApproved               Status = "approved"
	StatusRejected               Status = "rejected"
	StatusDisbursed              Status = "disbursed"
	StatusRepaying               Status = "repaying"
	StatusOverdue                Status = "overdue"
	StatusCompleted              Status = "completed"
)

// OpenStatuses are the statuses a reviewer can still decide on.
var OpenStatuses = []Status{StatusPending, StatusUnderReview, StatusRequiresHigherApproval}

// FundedStatuses count as a previous finance when scoring a new application.
var FundedStatuses = []Status{StatusDisbursed, StatusRepaying, StatusOverdue, StatusCompleted}

func (s Status) Open() bool {
	for _, o := range OpenStatuses {
		if s == o {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusRejected || s == StatusCompleted }

// InRepayment is true once money has left the fund.
func (s Status) InRepayment() bool {
	return s == StatusDisbursed || s == StatusRepaying || s == StatusOverdue
}

type Application struct {
	ID               uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID    string              `gorm:"size:32;uniqueIndex:ux_applications_application_id" json:"application_id"`
	MemberID         string              `gorm:"size:32;not null;index:idx_applications_member" json:"member_id"`
	Amount           decimal.Decimal     `gorm:"type:decimal(18,2);not null" json:"amount"`
	DurationMonths   int                 `gorm:"not null" json:"duration_months"`
	Purpose          string              `gorm:"size:255;not null" json:"purpose"`
	Description      string              `gorm:"type:text" json:"description"`
	PriorityScore    int                 `gorm:"not null" json:"priority_score"`
	PreviousFinances int                 `gorm:"not null;default:0" json:"previous_finances"`
	Status           Status              `gorm:"size:32;not null;index:idx_applications_status" json:"status"`
	RequiredLevel    role.Role           `gorm:"size:32" json:"required_approval_level,omitempty"`
	ApprovedAmount   decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"approved_amount"`
	DisbursedAmount  decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"disbursed_amount"`
	DisbursedAt      *time.Time          `json:"disbursed_at,omitempty"`
	Version          int64               `gorm:"not null;default:0" json:"version"`
	SubmittedAt      time.Time           `gorm:"not null;index:idx_applications_status" json:"submitted_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }

// State is the part of an application the decision log determines.
func (a *Application) State() State {
	return State{
		Status:          a.Status,
		RequiredLevel:   a.RequiredLevel,
		ApprovedAmount:  a.ApprovedAmount,
		DisbursedAmount: a.DisbursedAmount,
		Version:         a.Version,
	}
}

func (a *Application) SetState(s State) {
	a.Status = s.Status
	a.RequiredLevel = s.RequiredLevel
	a.ApprovedAmount = s.ApprovedAmount
	a.DisbursedAmount = s.DisbursedAmount
	a.Version = s.Version
}

// DecidedAmount is the figure a reviewer's authority is checked against.
func (a *Application) DecidedAmount(recommended decimal.NullDecimal) decimal.Decimal {
	if recommended.Valid && recommended.Decimal.GreaterThan(a.Amount) {
		return recommended.Decimal
	}
	return a.Amount
}

type Action string

const (
	ActionSubmit          Action = "submit"
	ActionStartReview     Action = "start_review"
	ActionApprove         Action = "approve"
	ActionReject          Action = "reject"
	ActionEscalate        Action = "escalate"
	ActionRequestMoreInfo Action = "request_more_info"
	ActionDisburse        Action = "disburse"
	ActionRepayment       Action = "repayment"
	ActionOverdue         Action = "overdue"
)

// ReviewerActions may be requested through the review endpoint.
var ReviewerActions = []Action{ActionStartReview, ActionApprove, ActionReject, ActionEscalate, ActionRequestMoreInfo}

func (a Action) ReviewerAction() bool {
	for _, r := range ReviewerActions {
		if a == r {
			return true
		}
	}
	return false
}

// Decision is one immutable entry of an application's audit trail.
// Seq equals the application version after the entry was applied.
type Decision struct {
	ID                uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID     uint64              `gorm:"not null;uniqueIndex:ux_decisions_app_seq,priority:1" json:"-"`
	Seq               int64               `gorm:"not null;uniqueIndex:ux_decisions_app_seq,priority:2" json:"seq"`
	ActorID           string              `gorm:"size:32;not null" json:"actor_id"`
	ActorRole         role.Role           `gorm:"size:32;not null" json:"actor_role"`
	Action            Action              `gorm:"size:32;not null" json:"action"`
	Notes             string              `gorm:"type:text" json:"notes,omitempty"`
	Conditions        string              `gorm:"type:text" json:"conditions,omitempty"`
	RecommendedAmount decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"recommended_amount"`
	Amount            decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"amount"`
	ToLevel           role.Role           `gorm:"size:32" json:"to_level,omitempty"`
	ResultStatus      Status              `gorm:"size:32;not null" json:"result_status"`
	CreatedAt         time.Time           `gorm:"not null" json:"created_at"`
}

func (Decision) TableName() string { return "application_decisions" }
