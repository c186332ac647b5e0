package restapi

import (
	"encoding/json"
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/geo"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/utils"
)

func (api *RestAPI) parksHandler(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := utils.ParseParkFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	parks := api.Engine.ListParks(filter)
	api.sendResponse(w, r, models.NewListResponse(models.NewParkList(parks), models.NewEmptyReferences()))
}

// parksGeoJSONHandler serves the filtered parks as a FeatureCollection for
// the map layer.
func (api *RestAPI) parksGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := utils.ParseParkFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	fc := geo.ParkFeatures(api.Engine.ListParks(filter))
	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}

func (api *RestAPI) parkFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters := models.ParkFilters{
		Cities: api.Engine.DistinctCities(),
		States: api.Engine.DistinctStates(),
	}
	api.sendResponse(w, r, models.NewEntryResponse(filters, models.NewEmptyReferences()))
}
