package restapi

import (
	"log/slog"
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/utils"
)

// searchHandler runs a search and hands the result to the session. A blank
// query changes nothing and answers 204.
func (api *RestAPI) searchHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("query")
	if err := utils.ValidateQuery(raw); err != nil {
		fieldErrors := map[string][]string{
			"query": {err.Error()},
		}
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, ok := api.Search(raw)
	if !ok {
		sendNoContent(w)
		return
	}

	sessionID := app.SessionID(w, r)
	if err := api.SaveSearch(r.Context(), sessionID, result); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	logging.LogOperation(logging.FromContext(r.Context()), "search_completed",
		slog.String("query", result.Query),
		slog.Int("parks", len(result.Parks)),
		slog.Int("routes", len(result.Routes)))

	api.sendResponse(w, r, models.NewEntryResponse(models.SearchModel{
		Query:  result.Query,
		Parks:  models.NewParkList(result.Parks),
		Routes: models.NewRouteViews(result.Routes),
	}, models.NewEmptyReferences()))
}

// lastSearchHandler returns the search last handed to this session.
func (api *RestAPI) lastSearchHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := app.ExistingSessionID(r)
	if !ok {
		api.sendNotFound(w, r, "Search not found")
		return
	}

	entry, found, err := api.LoadSearch(r.Context(), sessionID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if !found {
		api.sendNotFound(w, r, "Search not found")
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.SearchModel{
		Query:  entry.Query,
		Parks:  entry.Parks,
		Routes: models.NewStoredRouteViews(entry.Routes),
	}, models.NewEmptyReferences()))
}

func (api *RestAPI) endSessionHandler(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := app.ExistingSessionID(r); ok && api.Sessions != nil {
		if err := api.Sessions.EndSession(r.Context(), sessionID); err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
	}
	app.ClearSession(w)
	sendNoContent(w)
}
