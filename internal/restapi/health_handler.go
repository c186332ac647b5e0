package restapi

import (
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/models"
)

// healthHandler answers 503 while the dataset is unavailable so load
// balancers can tell a degraded instance apart.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := models.NewHealthModel(api.Engine.Dataset())
	if !api.Engine.Available() {
		api.sendResponse(w, r, models.NewResponse(http.StatusServiceUnavailable, health, "dataset unavailable"))
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(health))
}
