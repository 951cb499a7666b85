package guarantor

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

func (s Status) Decision() bool { return s == StatusAccepted || s == StatusDeclined }

type Assignment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	AssignmentID  string          `gorm:"size:32;uniqueIndex:ux_guarantor_assignments_assignment_id" json:"assignment_id"`
	ApplicationID uint64          `gorm:"not null;uniqueIndex:ux_guarantor_assignments_app_member,priority:1" json:"-"`
	GuarantorID   string          `gorm:"size:32;not null;uniqueIndex:ux_guarantor_assignments_app_member,priority:2;index:idx_guarantor_assignments_guarantor" json:"guarantor_id"`
	Share         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"share"`
	Status        Status          `gorm:"size:16;not null;default:'pending'" json:"status"`
	RequestedAt   time.Time       `gorm:"not null" json:"requested_at"`
	RespondedAt   *time.Time      `json:"responded_at,omitempty"`
}

func (Assignment) TableName() string { return "guarantor_assignments" }

// Committed sums the shares that still count against the application amount.
func Committed(items []Assignment) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range items {
		if a.Status != StatusDeclined {
			sum = sum.Add(a.Share)
		}
	}
	return sum
}

// Consensus is true when every guarantor accepted. No guarantors means nothing blocks.
func Consensus(items []Assignment) bool {
	for _, a := range items {
		if a.Status != StatusAccepted {
			return false
		}
	}
	return true
}

// SplitEqually divides amount across n guarantors in cents, remainder on the last.
func SplitEqually(amount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	part := amount.Div(decimal.NewFromInt(int64(n))).Truncate(2)
	out := make([]decimal.Decimal, n)
	rest := amount
	for i := 0; i < n-1; i++ {
		out[i] = part
		rest = rest.Sub(part)
	}
	out[n-1] = rest
	return out
}
