package priority

import "mutualfund-backend/internal/domain/sysconfig"

const (
	MaxScore = 100
	MinScore = 0
)

// History is what the scorer needs to know about an applicant.
type History struct {
	FundedCount int
}

// Score is the clamped weight minus a penalty per previously funded application.
// Computed once at submission and never recomputed.
func Score(h History, cfg sysconfig.SystemConfig) int {
	base := clamp(cfg.PriorityWeight)
	n := h.FundedCount
	if n < 0 {
		n = 0
	}
	penalty := cfg.PriorityPenalty
	if penalty < 0 {
		penalty = 0
	}
	return clamp(base - n*penalty)
}

func clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

type Band string

const (
	BandHighest Band = "highest"
	BandHigh    Band = "high"
	BandMedium  Band = "medium"
	BandLow     Band = "low"
)

// BandOf is a display helper; bands are never stored.
func BandOf(score int) Band {
	switch {
	case score >= 90:
		return BandHighest
	case score >= 70:
		return BandHigh
	case score >= 50:
		return BandMedium
	}
	return BandLow
}
