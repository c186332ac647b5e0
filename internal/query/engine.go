// Package query answers filter, lookup and search requests over a loaded
// dataset. Results are views: slices of pointers into the dataset's records in
// document order. A nil dataset is treated as empty.
package query

import (
	"github.com/Gift-726/Bus-Routing/internal/dataset"
)

// Engine is safe for concurrent use; it only reads the dataset.
type Engine struct {
	data *dataset.Dataset
}

// NewEngine returns an Engine over ds. ds may be nil when the dataset could
// not be loaded; every operation then yields empty results.
func NewEngine(ds *dataset.Dataset) *Engine {
	return &Engine{data: ds}
}

// Available reports whether a dataset is loaded.
func (e *Engine) Available() bool {
	return e.data != nil
}

// Dataset returns the underlying handle, or nil.
func (e *Engine) Dataset() *dataset.Dataset {
	return e.data
}

func (e *Engine) ListParks(f ParkFilter) []*dataset.Park {
	parks := e.data.Parks()
	result := make([]*dataset.Park, 0, len(parks))
	for i := range parks {
		p := &parks[i]
		if f.City.accepts(p.City) && f.State.accepts(p.State) {
			result = append(result, p)
		}
	}
	return result
}

func (e *Engine) ListRoutes(f RouteFilter) []*dataset.Route {
	routes := e.data.Routes()
	result := make([]*dataset.Route, 0, len(routes))
	for i := range routes {
		r := &routes[i]
		if f.DepartureParkName.accepts(r.DepartureParkName) {
			result = append(result, r)
		}
	}
	return result
}

// DistinctCities is computed over all parks, never over a filtered view, so
// filter option lists stay stable while filters are applied.
func (e *Engine) DistinctCities() []string {
	return DistinctCities(e.data.Parks())
}

func (e *Engine) DistinctStates() []string {
	return DistinctStates(e.data.Parks())
}

func (e *Engine) DistinctDepartureParkNames() []string {
	return DistinctDepartureParkNames(e.data.Routes())
}

// Search matches the normalized q as a substring of park name, city or state
// and of route destination, name or departure park name. ok is false when q
// is blank; callers must then leave all state untouched.
func (e *Engine) Search(q string) (SearchResult, bool) {
	needle := NormalizeQuery(q)
	if needle == "" {
		return SearchResult{}, false
	}

	parks := e.data.Parks()
	routes := e.data.Routes()
	result := SearchResult{
		Query:  needle,
		Parks:  make([]*dataset.Park, 0),
		Routes: make([]*dataset.Route, 0),
	}
	for i := range parks {
		if parkMatches(&parks[i], needle) {
			result.Parks = append(result.Parks, &parks[i])
		}
	}
	for i := range routes {
		if routeMatches(&routes[i], needle) {
			result.Routes = append(result.Routes, &routes[i])
		}
	}
	return result, true
}

func (e *Engine) FindParkByID(id string) (*dataset.Park, bool) {
	parks := e.data.Parks()
	for i := range parks {
		if parks[i].ID == id {
			return &parks[i], true
		}
	}
	return nil, false
}

func (e *Engine) FindRouteByID(id string) (*dataset.Route, bool) {
	routes := e.data.Routes()
	for i := range routes {
		if routes[i].ID == id {
			return &routes[i], true
		}
	}
	return nil, false
}

// RoutesForPark returns the routes departing from parkID.
func (e *Engine) RoutesForPark(parkID string) []*dataset.Route {
	routes := e.data.Routes()
	result := make([]*dataset.Route, 0)
	for i := range routes {
		if routes[i].DepartureParkID == parkID {
			result = append(result, &routes[i])
		}
	}
	return result
}

// DepartureParkFor resolves the route's departure park. Orphaned routes
// return false.
func (e *Engine) DepartureParkFor(r *dataset.Route) (*dataset.Park, bool) {
	if r == nil {
		return nil, false
	}
	return e.FindParkByID(r.DepartureParkID)
}

// FeaturedParks returns the first n parks.
func (e *Engine) FeaturedParks(n int) []*dataset.Park {
	return firstN(e.data.Parks(), n)
}

// FeaturedRoutes returns the first n routes.
func (e *Engine) FeaturedRoutes(n int) []*dataset.Route {
	return firstN(e.data.Routes(), n)
}

func firstN[T any](records []T, n int) []*T {
	n = max(0, min(n, len(records)))
	result := make([]*T, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, &records[i])
	}
	return result
}
