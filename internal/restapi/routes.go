package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/parks.json", api.parksHandler)
	router.HandlerFunc(http.MethodGet, "/api/parks.geojson", api.parksGeoJSONHandler)
	router.HandlerFunc(http.MethodGet, "/api/parks/filters.json", api.parkFiltersHandler)
	router.HandlerFunc(http.MethodGet, "/api/park/:id", api.parkHandler)

	router.HandlerFunc(http.MethodGet, "/api/routes.json", api.routesHandler)
	router.HandlerFunc(http.MethodGet, "/api/routes/filters.json", api.routeFiltersHandler)
	router.HandlerFunc(http.MethodGet, "/api/route/:id", api.routeHandler)

	router.HandlerFunc(http.MethodGet, "/api/featured.json", api.featuredHandler)

	router.HandlerFunc(http.MethodPost, "/api/search.json", api.searchHandler)
	router.HandlerFunc(http.MethodGet, "/api/search.json", api.lastSearchHandler)
	router.HandlerFunc(http.MethodDelete, "/api/session.json", api.endSessionHandler)

	router.HandlerFunc(http.MethodGet, "/api/current-time.json", api.currentTimeHandler)
	router.HandlerFunc(http.MethodGet, "/healthz", api.healthHandler)
}
