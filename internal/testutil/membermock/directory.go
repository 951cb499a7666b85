package membermock

import (
	"context"

	domain "mutualfund-backend/internal/domain/member"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ domain.Directory = (*Directory)(nil)

// Directory serves members from a map keyed by member id.
type Directory struct {
	Members  map[string]*domain.Member
	Deposits map[string]decimal.Decimal
}

func New(ms ...*domain.Member) *Directory {
	d := &Directory{Members: map[string]*domain.Member{}, Deposits: map[string]decimal.Decimal{}}
	for _, m := range ms {
		d.Members[m.MemberID] = m
	}
	return d
}

func (d *Directory) GetByMemberID(_ context.Context, memberID string) (*domain.Member, error) {
	m, ok := d.Members[memberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (d *Directory) GetByMemberIDs(_ context.Context, memberIDs []string) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(memberIDs))
	for _, id := range memberIDs {
		if m, ok := d.Members[id]; ok {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (d *Directory) ListActive(_ context.Context, country string) ([]domain.Member, error) {
	var out []domain.Member
	for _, m := range d.Members {
		if m.Active && (country == "" || m.Country == country) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (d *Directory) CompletedDeposits(_ context.Context, memberID string) (decimal.Decimal, error) {
	return d.Deposits[memberID], nil
}
