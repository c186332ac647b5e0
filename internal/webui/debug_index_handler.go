package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func (ui *WebUI) writeDebugData(w http.ResponseWriter, r *http.Request, title string, data interface{}) {
	var buf bytes.Buffer
	if err := ui.debug.Execute(&buf, debugData{Title: title, Pre: spew.Sdump(data)}); err != nil {
		ui.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (ui *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	ds := ui.Engine.Dataset()
	if ds == nil {
		ui.writeDebugData(w, r, "Dataset unavailable", map[string]string{
			"error": "The dataset could not be loaded.",
		})
		return
	}

	var data interface{}
	var title string

	switch dataType {
	case "parks":
		data = ds.Parks()
		title = "Dataset - Bus Parks"
	case "routes":
		data = ds.Routes()
		title = "Dataset - Routes"
	case "warnings":
		data = ds.Warnings()
		title = "Dataset - Load Warnings"
	default:
		data = map[string]string{
			"error": "Please use one of the following: parks, routes, warnings.",
		}
		title = "Choose a data type"
	}

	ui.writeDebugData(w, r, title, data)
}
