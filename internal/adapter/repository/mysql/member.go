package mysql

import (
	"context"

	memberDomain "mutualfund-backend/internal/domain/member"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) GetByMemberIDs(ctx context.Context, memberIDs []string) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	if len(memberIDs) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).Where("member_id IN ?", memberIDs).Find(&out)
	return out, res.Error
}

func (r *MemberRepository) ListActive(ctx context.Context, country string) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if country != "" {
		q = q.Where("country = ?", country)
	}
	res := q.Order("full_name ASC, member_id ASC").Find(&out)
	return out, res.Error
}

// Summed in Go so the result keeps exact cents on every driver.
func (r *MemberRepository) CompletedDeposits(ctx context.Context, memberID string) (decimal.Decimal, error) {
	var rows []memberDomain.Deposit
	res := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, memberDomain.DepositCompleted).
		Find(&rows)
	if res.Error != nil {
		return decimal.Zero, res.Error
	}
	sum := decimal.Zero
	for _, d := range rows {
		sum = sum.Add(d.Amount)
	}
	return sum, nil
}
