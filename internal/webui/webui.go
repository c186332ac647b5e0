// Package webui renders the directory's HTML pages. Pages are addressed by
// file name, as in a static site, but rendered server side from the query
// engine.
package webui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/geo"
	"github.com/Gift-726/Bus-Routing/internal/logging"
)

//go:embed templates static
var webFS embed.FS

const (
	indexPage   = "index.html"
	parksPage   = "parks.html"
	routesPage  = "routes.html"
	detailsPage = "details.html"
)

var pageNames = []string{indexPage, parksPage, routesPage, detailsPage}

type WebUI struct {
	*app.Application
	pages map[string]*template.Template
	debug *template.Template
	tiles geo.TileLayer
}

// NewWebUI parses the embedded page templates once.
func NewWebUI(application *app.Application) (*WebUI, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(webFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	debug, err := template.ParseFS(webFS, "templates/debug_index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse debug page: %w", err)
	}

	return &WebUI{
		Application: application,
		pages:       pages,
		debug:       debug,
		tiles:       geo.NewTileLayer(application.Config.TileURL, application.Config.TileAttribution),
	}, nil
}

type navLink struct {
	Href   string
	Label  string
	Active bool
}

// page is the data every template receives. Data carries the page-specific
// view.
type page struct {
	Title string
	Nav   []navLink
	Query string
	Map   bool
	Data  any
}

func navLinks(current string) []navLink {
	return []navLink{
		{Href: "/index.html", Label: "Home", Active: current == indexPage},
		{Href: "/parks.html", Label: "Parks", Active: current == parksPage},
		{Href: "/routes.html", Label: "Routes", Active: current == routesPage},
	}
}

// render executes the page into a buffer first so a template error never
// produces a half-written response.
func (ui *WebUI) render(w http.ResponseWriter, r *http.Request, status int, name string, p page) {
	tmpl, ok := ui.pages[name]
	if !ok {
		ui.serverError(w, r, fmt.Errorf("unknown page %q", name))
		return
	}
	p.Nav = navLinks(name)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", p); err != nil {
		ui.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (ui *WebUI) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(ui.Logger, "failed to render page", err,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(webFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
