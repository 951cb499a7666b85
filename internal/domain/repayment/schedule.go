package repayment

import (
	"time"

	"mutualfund-backend/internal/domain/apperr"

	"github.com/shopspring/decimal"
)

// Generate splits amount into months equal installments truncated to cents.
// The last installment absorbs the remainder so the parts always sum to amount.
// Due dates fall on start plus 1..months calendar months, clamped to the month end.
func Generate(amount decimal.Decimal, months int, start time.Time) ([]Installment, error) {
	if months <= 0 {
		return nil, apperr.InvalidDuration(months)
	}
	if !amount.IsPositive() {
		return nil, apperr.Validation("schedule amount must be positive")
	}
	amount = amount.Round(2)
	part := amount.Div(decimal.NewFromInt(int64(months))).Truncate(2)

	out := make([]Installment, 0, months)
	allocated := decimal.Zero
	for i := 1; i <= months; i++ {
		amt := part
		if i == months {
			amt = amount.Sub(allocated)
		}
		allocated = allocated.Add(amt)
		out = append(out, Installment{
			Seq:     i,
			Amount:  amt,
			DueDate: AddMonths(start, i),
			Status:  StatusUnpaid,
		})
	}
	return out, nil
}

// AddMonths moves t forward n calendar months, keeping the day unless the target month is shorter.
func AddMonths(t time.Time, n int) time.Time {
	t = t.UTC()
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// Total sums the installment amounts.
func Total(items []Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Amount)
	}
	return sum
}
