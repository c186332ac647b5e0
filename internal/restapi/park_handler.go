package restapi

import (
	"log/slog"
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/geo"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/utils"
)

func (api *RestAPI) parkHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := utils.ValidateID(id); err != nil {
		fieldErrors := map[string][]string{
			"id": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	park, ok := utils.ResolveID(id, api.Engine.FindParkByID)
	if !ok {
		api.sendNotFound(w, r, "Park not found")
		return
	}

	entry := models.ParkEntry{
		Park:   *park,
		Routes: models.NewRouteViews(api.Engine.RoutesForPark(park.ID)),
	}
	if marker, err := geo.MarkerForPark(park); err == nil {
		entry.Marker = &marker
	} else {
		logging.LogError(api.Logger, "park has no usable location", err, slog.String("park_id", park.ID))
	}

	api.sendResponse(w, r, models.NewEntryResponse(entry, models.NewEmptyReferences()))
}
