package restapi

import (
	"net/http"
	"time"

	"github.com/Gift-726/Bus-Routing/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewOKResponse(models.NewCurrentTimeData(time.Now())))
}
