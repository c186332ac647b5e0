package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
)

// SearchResult holds the parks and routes matching a normalized query.
type SearchResult struct {
	Query  string
	Parks  []*dataset.Park
	Routes []*dataset.Route
}

// NormalizeQuery trims surrounding whitespace and lowercases q.
func NormalizeQuery(q string) string {
	return fold(strings.TrimSpace(q))
}

// fold lowercases s. A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func containsFolded(field, needle string) bool {
	return strings.Contains(fold(field), needle)
}

func parkMatches(p *dataset.Park, needle string) bool {
	return containsFolded(p.Name, needle) ||
		containsFolded(p.City, needle) ||
		containsFolded(p.State, needle)
}

func routeMatches(r *dataset.Route, needle string) bool {
	return containsFolded(r.Destination, needle) ||
		containsFolded(r.RouteName, needle) ||
		containsFolded(r.DepartureParkName, needle)
}
