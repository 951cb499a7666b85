package repayment

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusOverdue Status = "overdue"
	StatusPaid    Status = "paid"
)

type Installment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	InstallmentID string          `gorm:"size:32;uniqueIndex:ux_installments_installment_id" json:"installment_id"`
	ApplicationID uint64          `gorm:"not null;uniqueIndex:ux_installments_app_seq,priority:1" json:"-"`
	Seq           int             `gorm:"not null;uniqueIndex:ux_installments_app_seq,priority:2" json:"seq"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	DueDate       time.Time       `gorm:"not null;index:idx_installments_due" json:"due_date"`
	Status        Status          `gorm:"size:16;not null;default:'unpaid';index:idx_installments_due" json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Installment) TableName() string { return "installments" }

// CanPay reports whether the installment may still move to paid. Paid is terminal.
func (i Installment) CanPay() bool { return i.Status == StatusUnpaid || i.Status == StatusOverdue }

// IsOverdue reports whether an unpaid installment's due date has passed at now.
func (i Installment) IsOverdue(now time.Time) bool {
	return i.Status == StatusUnpaid && now.After(i.DueDate)
}
