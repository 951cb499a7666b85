package member

import (
	"time"

	"mutualfund-backend/internal/domain/role"

	"github.com/shopspring/decimal"
)

// Member is read-only to this service; the directory is maintained elsewhere.
type Member struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	MemberID  string    `gorm:"size:32;uniqueIndex:ux_members_member_id" json:"member_id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Email     string    `gorm:"size:255" json:"email"`
	Country   string    `gorm:"size:64;not null;index:idx_members_country" json:"country"`
	Role      role.Role `gorm:"size:32;not null;default:'member'" json:"role"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Member) TableName() string { return "members" }

type DepositStatus string

const (
	DepositPending   DepositStatus = "pending"
	DepositCompleted DepositStatus = "completed"
)

type Deposit struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	MemberID  string          `gorm:"size:32;not null;index:idx_deposits_member" json:"member_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status    DepositStatus   `gorm:"size:16;not null;default:'completed'" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Deposit) TableName() string { return "deposits" }
