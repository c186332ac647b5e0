package models

import (
	"time"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/geo"
)

// RouteView is a route with its fare range preformatted for display.
type RouteView struct {
	dataset.Route
	FareRange string `json:"fareRange"`
}

func NewRouteView(r *dataset.Route) RouteView {
	return RouteView{
		Route:     *r,
		FareRange: FormatFareRange(r.EstimatedFareMin, r.EstimatedFareMax),
	}
}

func NewRouteViews(routes []*dataset.Route) []RouteView {
	views := make([]RouteView, 0, len(routes))
	for _, r := range routes {
		views = append(views, NewRouteView(r))
	}
	return views
}

// NewStoredRouteViews builds views over routes read back from a session.
func NewStoredRouteViews(routes []dataset.Route) []RouteView {
	views := make([]RouteView, 0, len(routes))
	for i := range routes {
		views = append(views, NewRouteView(&routes[i]))
	}
	return views
}

// NewParkList copies the viewed parks for encoding.
func NewParkList(parks []*dataset.Park) []dataset.Park {
	list := make([]dataset.Park, 0, len(parks))
	for _, p := range parks {
		list = append(list, *p)
	}
	return list
}

type ParkEntry struct {
	Park   dataset.Park `json:"park"`
	Routes []RouteView  `json:"routes"`
	Marker *geo.Marker  `json:"marker,omitempty"`
}

// RouteEntry describes a route. DeparturePark and Marker are nil when the
// route's departure park is not in the dataset.
type RouteEntry struct {
	Route         RouteView     `json:"route"`
	DeparturePark *dataset.Park `json:"departurePark"`
	Marker        *geo.Marker   `json:"marker,omitempty"`
}

type ParkFilters struct {
	Cities []string `json:"cities"`
	States []string `json:"states"`
}

type RouteFilters struct {
	DepartureParks []string `json:"departureParks"`
}

type FeaturedModel struct {
	Parks  []dataset.Park `json:"parks"`
	Routes []RouteView    `json:"routes"`
}

type SearchModel struct {
	Query  string         `json:"query"`
	Parks  []dataset.Park `json:"parks"`
	Routes []RouteView    `json:"routes"`
}

// HealthModel reports whether the dataset was loaded.
type HealthModel struct {
	Status   string    `json:"status"`
	Dataset  string    `json:"dataset"`
	Parks    int       `json:"parks"`
	Routes   int       `json:"routes"`
	Warnings int       `json:"warnings"`
	Source   string    `json:"source,omitempty"`
	LoadedAt time.Time `json:"loadedAt,omitzero"`
}

func NewHealthModel(ds *dataset.Dataset) HealthModel {
	if ds == nil {
		return HealthModel{Status: "degraded", Dataset: "unavailable"}
	}
	return HealthModel{
		Status:   "ok",
		Dataset:  "available",
		Parks:    len(ds.Parks()),
		Routes:   len(ds.Routes()),
		Warnings: len(ds.Warnings()),
		Source:   ds.Source(),
		LoadedAt: ds.LoadedAt(),
	}
}
