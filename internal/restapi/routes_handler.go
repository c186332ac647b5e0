package restapi

import (
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/utils"
)

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := utils.ParseRouteFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	routes := api.Engine.ListRoutes(filter)
	references := models.NewEmptyReferences()
	references.Parks = api.departureParkReferences(routes)

	api.sendResponse(w, r, models.NewListResponse(models.NewRouteViews(routes), references))
}

func (api *RestAPI) routeFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters := models.RouteFilters{
		DepartureParks: api.Engine.DistinctDepartureParkNames(),
	}
	api.sendResponse(w, r, models.NewEntryResponse(filters, models.NewEmptyReferences()))
}

// departureParkReferences resolves the departure parks of routes, once each,
// in order of first appearance. Orphaned routes contribute nothing.
func (api *RestAPI) departureParkReferences(routes []*dataset.Route) []dataset.Park {
	seen := make(map[string]bool)
	parks := make([]dataset.Park, 0)
	for _, route := range routes {
		if seen[route.DepartureParkID] {
			continue
		}
		seen[route.DepartureParkID] = true
		if park, ok := api.Engine.DepartureParkFor(route); ok {
			parks = append(parks, *park)
		}
	}
	return parks
}
