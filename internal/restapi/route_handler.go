package restapi

import (
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/geo"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/utils"
)

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	route, ok := utils.ResolveID(id, api.Engine.FindRouteByID)
	if !ok {
		api.sendNotFound(w, r, "Route not found")
		return
	}

	entry := models.RouteEntry{Route: models.NewRouteView(route)}
	references := models.NewEmptyReferences()

	if park, ok := api.Engine.DepartureParkFor(route); ok {
		entry.DeparturePark = park
		references.Parks = append(references.Parks, *park)
		if marker, err := geo.MarkerForPark(park); err == nil {
			entry.Marker = &marker
		}
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}
