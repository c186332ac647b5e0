package webui

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (ui *WebUI) SetWebUIRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/", ui.indexHandler)
	router.HandlerFunc(http.MethodGet, "/"+indexPage, ui.indexHandler)
	router.HandlerFunc(http.MethodGet, "/"+parksPage, ui.parksHandler)
	router.HandlerFunc(http.MethodGet, "/"+routesPage, ui.routesHandler)
	router.HandlerFunc(http.MethodGet, "/"+detailsPage, ui.detailsHandler)
	router.HandlerFunc(http.MethodPost, "/search", ui.searchHandler)
	router.HandlerFunc(http.MethodGet, "/debug/", ui.debugIndexHandler)
	router.ServeFiles("/static/*filepath", staticFiles())
}
