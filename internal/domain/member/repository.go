package member

import (
	"context"

	"github.com/shopspring/decimal"
)

// Directory is the read side of the member registry.
type Directory interface {
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	GetByMemberIDs(ctx context.Context, memberIDs []string) ([]Member, error)
	// ListActive returns active members, optionally restricted to one country.
	ListActive(ctx context.Context, country string) ([]Member, error)
	// CompletedDeposits sums the member's completed deposits.
	CompletedDeposits(ctx context.Context, memberID string) (decimal.Decimal, error)
}
