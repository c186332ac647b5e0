package webui

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/geo"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/query"
	"github.com/Gift-726/Bus-Routing/internal/utils"
	"github.com/Gift-726/Bus-Routing/sessiondb"
)

type option struct {
	Value    string
	Selected bool
}

func options(values []string, m query.Match) []option {
	selected, ok := m.Value()
	opts := make([]option, 0, len(values))
	for _, v := range values {
		opts = append(opts, option{Value: v, Selected: ok && v == selected})
	}
	return opts
}

type homeData struct {
	Parks  []dataset.Park
	Routes []models.RouteView
}

type parksData struct {
	Parks  []dataset.Park
	Cities []option
	States []option
}

type routesData struct {
	Routes []models.RouteView
	Parks  []option
}

type detailsData struct {
	NotFound      string
	Park          *dataset.Park
	Routes        []models.RouteView
	Route         *models.RouteView
	DeparturePark *dataset.Park
	Marker        *geo.Marker
	Tiles         geo.TileLayer
}

func (ui *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	ui.render(w, r, http.StatusOK, indexPage, page{
		Title: "Home",
		Data: homeData{
			Parks:  models.NewParkList(ui.Engine.FeaturedParks(app.FeaturedCount)),
			Routes: models.NewRouteViews(ui.Engine.FeaturedRoutes(app.FeaturedCount)),
		},
	})
}

// parksHandler lists parks by filter, or shows the session's search results
// when ?search= is present.
func (ui *WebUI) parksHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if search := query.NormalizeQuery(params.Get("search")); search != "" {
		entry := ui.sessionSearch(r)
		ui.render(w, r, http.StatusOK, parksPage, page{
			Title: "Search results",
			Query: search,
			Data:  parksData{Parks: entry.Parks},
		})
		return
	}

	filter, fieldErrors := utils.ParseParkFilter(params)
	if len(fieldErrors) > 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ui.render(w, r, http.StatusOK, parksPage, page{
		Title: "Parks",
		Data: parksData{
			Parks:  models.NewParkList(ui.Engine.ListParks(filter)),
			Cities: options(ui.Engine.DistinctCities(), filter.City),
			States: options(ui.Engine.DistinctStates(), filter.State),
		},
	})
}

func (ui *WebUI) routesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if search := query.NormalizeQuery(params.Get("search")); search != "" {
		entry := ui.sessionSearch(r)
		ui.render(w, r, http.StatusOK, routesPage, page{
			Title: "Search results",
			Query: search,
			Data:  routesData{Routes: models.NewStoredRouteViews(entry.Routes)},
		})
		return
	}

	filter, fieldErrors := utils.ParseRouteFilter(params)
	if len(fieldErrors) > 0 {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	ui.render(w, r, http.StatusOK, routesPage, page{
		Title: "Routes",
		Data: routesData{
			Routes: models.NewRouteViews(ui.Engine.ListRoutes(filter)),
			Parks:  options(ui.Engine.DistinctDepartureParkNames(), filter.DepartureParkName),
		},
	})
}

// sessionSearch returns the results handed off by the last search of this
// session. Without one the page shows its empty state.
func (ui *WebUI) sessionSearch(r *http.Request) sessiondb.SearchEntry {
	sessionID, ok := app.ExistingSessionID(r)
	if !ok {
		return sessiondb.SearchEntry{}
	}
	entry, _, err := ui.LoadSearch(r.Context(), sessionID)
	if err != nil {
		logging.LogError(ui.Logger, "failed to load session search", err,
			slog.String("session_id", sessionID))
		return sessiondb.SearchEntry{}
	}
	return entry
}

func (ui *WebUI) detailsHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	id := params.Get("id")

	var data detailsData
	switch params.Get("type") {
	case "park":
		data = ui.parkDetails(id)
	case "route":
		data = ui.routeDetails(id)
	default:
		data = detailsData{NotFound: "Details not found"}
	}

	status := http.StatusOK
	title := data.NotFound
	switch {
	case data.NotFound != "":
		status = http.StatusNotFound
	case data.Park != nil:
		title = data.Park.Name
	case data.Route != nil:
		title = data.Route.RouteName
	}

	ui.render(w, r, status, detailsPage, page{
		Title: title,
		Map:   data.Marker != nil,
		Data:  data,
	})
}

func (ui *WebUI) parkDetails(id string) detailsData {
	if utils.ValidateID(id) != nil {
		return detailsData{NotFound: "Park not found"}
	}
	park, ok := ui.Engine.FindParkByID(id)
	if !ok {
		return detailsData{NotFound: "Park not found"}
	}
	return detailsData{
		Park:   park,
		Routes: models.NewRouteViews(ui.Engine.RoutesForPark(park.ID)),
		Marker: ui.marker(park),
		Tiles:  ui.tiles,
	}
}

// routeDetails shows the departure park and its map only when the route's
// park resolves.
func (ui *WebUI) routeDetails(id string) detailsData {
	if utils.ValidateID(id) != nil {
		return detailsData{NotFound: "Route not found"}
	}
	route, ok := ui.Engine.FindRouteByID(id)
	if !ok {
		return detailsData{NotFound: "Route not found"}
	}
	view := models.NewRouteView(route)
	data := detailsData{Route: &view, Tiles: ui.tiles}
	if park, ok := ui.Engine.DepartureParkFor(route); ok {
		data.DeparturePark = park
		data.Marker = ui.marker(park)
	}
	return data
}

func (ui *WebUI) marker(p *dataset.Park) *geo.Marker {
	m, err := geo.MarkerForPark(p)
	if err != nil {
		logging.LogError(ui.Logger, "park has no usable location", err, slog.String("park_id", p.ID))
		return nil
	}
	return &m
}

// searchHandler runs the header search form. A blank query does nothing;
// otherwise the results are handed to the parks page through the session.
func (ui *WebUI) searchHandler(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("query")
	if err := utils.ValidateQuery(raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, ok := ui.Search(raw)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sessionID := app.SessionID(w, r)
	if err := ui.SaveSearch(r.Context(), sessionID, result); err != nil {
		ui.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+parksPage+"?search="+url.QueryEscape(result.Query), http.StatusSeeOther)
}
