package query

// Match is an optional exact-match constraint on one field. The zero value
// places no constraint.
type Match struct {
	value   string
	present bool
}

// Any returns a Match that accepts every value.
func Any() Match {
	return Match{}
}

// Exactly returns a Match that accepts only v (case-sensitive).
func Exactly(v string) Match {
	return Match{value: v, present: true}
}

// Value returns the constrained value and whether a constraint is present.
func (m Match) Value() (string, bool) {
	return m.value, m.present
}

func (m Match) accepts(field string) bool {
	return !m.present || field == m.value
}

// ParkFilter constrains ListParks. Constraints combine with AND.
type ParkFilter struct {
	City  Match
	State Match
}

// RouteFilter constrains ListRoutes.
type RouteFilter struct {
	DepartureParkName Match
}
