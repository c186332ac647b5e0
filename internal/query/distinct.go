package query

import (
	"slices"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
)

// distinct returns the unique values of field over records, sorted by code point.
func distinct[T any](records []T, field func(*T) string) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, len(records))
	for i := range records {
		v := field(&records[i])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

// DistinctCities lists the cities of parks without duplicates, ascending.
func DistinctCities(parks []dataset.Park) []string {
	return distinct(parks, func(p *dataset.Park) string { return p.City })
}

// DistinctStates lists the states of parks without duplicates, ascending.
func DistinctStates(parks []dataset.Park) []string {
	return distinct(parks, func(p *dataset.Park) string { return p.State })
}

// DistinctDepartureParkNames lists the departure park names of routes without
// duplicates, ascending.
func DistinctDepartureParkNames(routes []dataset.Route) []string {
	return distinct(routes, func(r *dataset.Route) string { return r.DepartureParkName })
}
