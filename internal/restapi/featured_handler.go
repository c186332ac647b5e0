package restapi

import (
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/models"
)

func (api *RestAPI) featuredHandler(w http.ResponseWriter, r *http.Request) {
	featured := models.FeaturedModel{
		Parks:  models.NewParkList(api.Engine.FeaturedParks(app.FeaturedCount)),
		Routes: models.NewRouteViews(api.Engine.FeaturedRoutes(app.FeaturedCount)),
	}
	api.sendResponse(w, r, models.NewEntryResponse(featured, models.NewEmptyReferences()))
}
