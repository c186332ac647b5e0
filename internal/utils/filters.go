package utils

import (
	"net/url"
	"strings"

	"github.com/Gift-726/Bus-Routing/internal/query"
)

// AllValue is the filter option that removes a constraint.
const AllValue = "all"

// ParseMatch reads an exact-match constraint from params. A missing, blank
// or "all" value means no constraint. Any other value is matched as sent.
func ParseMatch(params url.Values, key string) query.Match {
	raw := params.Get(key)
	if strings.TrimSpace(raw) == "" || raw == AllValue {
		return query.Any()
	}
	return query.Exactly(raw)
}

// ParseParkFilter reads the city and state filters. Values that fail
// validation are reported in fieldErrors keyed by parameter name.
func ParseParkFilter(params url.Values) (query.ParkFilter, map[string][]string) {
	fieldErrors := make(map[string][]string)
	validateFilterParam(params, "city", fieldErrors)
	validateFilterParam(params, "state", fieldErrors)
	return query.ParkFilter{
		City:  ParseMatch(params, "city"),
		State: ParseMatch(params, "state"),
	}, fieldErrors
}

// ParseRouteFilter reads the departure park filter from "park".
func ParseRouteFilter(params url.Values) (query.RouteFilter, map[string][]string) {
	fieldErrors := make(map[string][]string)
	validateFilterParam(params, "park", fieldErrors)
	return query.RouteFilter{
		DepartureParkName: ParseMatch(params, "park"),
	}, fieldErrors
}

func validateFilterParam(params url.Values, key string, fieldErrors map[string][]string) {
	if err := ValidateFilterValue(params.Get(key)); err != nil {
		fieldErrors[key] = append(fieldErrors[key], err.Error())
	}
}
