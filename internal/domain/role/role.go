package role

// Role is a member's position in the reviewer hierarchy.
type Role string

const (
	Member             Role = "member"
	CountryCoordinator Role = "country_coordinator"
	FundAdmin          Role = "fund_admin"
	GeneralAdmin       Role = "general_admin"

	// System signs decision records written by scheduled jobs. It has no rank.
	System Role = "system"
)

// Reviewers in ascending order of authority.
var Reviewers = []Role{CountryCoordinator, FundAdmin, GeneralAdmin}

// Rank orders roles; members rank 0, unknown roles -1.
func (r Role) Rank() int {
	switch r {
	case Member:
		return 0
	case CountryCoordinator:
		return 1
	case FundAdmin:
		return 2
	case GeneralAdmin:
		return 3
	}
	return -1
}

func (r Role) Valid() bool { return r.Rank() >= 0 }

func (r Role) IsReviewer() bool { return r.Rank() >= CountryCoordinator.Rank() }

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool { return r.Valid() && r.Rank() >= other.Rank() }

// Next returns the reviewer tier above r. ok is false for the general admin.
func (r Role) Next() (Role, bool) {
	switch r {
	case Member:
		return CountryCoordinator, true
	case CountryCoordinator:
		return FundAdmin, true
	case FundAdmin:
		return GeneralAdmin, true
	}
	return "", false
}

func Parse(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
