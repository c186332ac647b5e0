package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gift-726/Bus-Routing/internal/app"
	"github.com/Gift-726/Bus-Routing/internal/appconf"
	"github.com/Gift-726/Bus-Routing/internal/dataset"
	"github.com/Gift-726/Bus-Routing/internal/logging"
	"github.com/Gift-726/Bus-Routing/internal/models"
	"github.com/Gift-726/Bus-Routing/internal/query"
	"github.com/Gift-726/Bus-Routing/sessiondb"
)

func createTestWebUI(t *testing.T) *WebUI {
	t.Helper()
	return createTestWebUIWithDataset(t, models.LoadFixtureDataset(t))
}

func createTestWebUIWithDataset(t *testing.T, ds *dataset.Dataset) *WebUI {
	t.Helper()
	sessions, err := sessiondb.NewClient(sessiondb.NewConfig(":memory:", appconf.Test, nil, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	cfg := appconf.Default()
	cfg.Env = appconf.Test
	logger := logging.NewStructuredLogger(io.Discard, slog.LevelDebug)

	ui, err := NewWebUI(app.New(cfg, logger, query.NewEngine(ds), sessions))
	require.NoError(t, err)
	return ui
}

func serve(ui *WebUI, req *http.Request) *httptest.ResponseRecorder {
	router := httprouter.New()
	ui.SetWebUIRoutes(router)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, ui *WebUI, target string, cookies ...*http.Cookie) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := serve(ui, req)
	return rr.Code, rr.Body.String()
}

func postSearch(ui *WebUI, q string) *httptest.ResponseRecorder {
	form := url.Values{"query": {q}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(ui, req)
}

func TestIndexPage(t *testing.T) {
	ui := createTestWebUI(t)

	for _, target := range []string{"/", "/index.html"} {
		code, body := get(t, ui, target)
		require.Equal(t, http.StatusOK, code, target)

		assert.Contains(t, body, "Featured Parks")
		assert.Contains(t, body, "Jibowu Motor Park")
		assert.Contains(t, body, "Utako Motor Park")
		assert.NotContains(t, body, "Iwo Road Motor Park", "only the first three parks are featured")
		assert.Contains(t, body, "Lagos - Benin")
		assert.NotContains(t, body, "Abuja - Kaduna", "only the first three routes are featured")
		assert.Contains(t, body, "₦15,000 - ₦22,000")
		assert.Contains(t, body, `href="/index.html" class="active" aria-current="page"`)
	}
}

func TestParksPage(t *testing.T) {
	ui := createTestWebUI(t)

	t.Run("all parks", func(t *testing.T) {
		code, body := get(t, ui, "/parks.html")
		require.Equal(t, http.StatusOK, code)
		for _, name := range []string{"Jibowu Motor Park", "Ojota New Garage", "Utako Motor Park", "Iwo Road Motor Park", "Upper Iweka Motor Park"} {
			assert.Contains(t, body, name)
		}
		assert.Contains(t, body, `href="/parks.html" class="active" aria-current="page"`)
		assert.NotContains(t, body, `href="/routes.html" class="active"`)
		assert.Contains(t, body, `<option value="Abuja">Abuja</option>`)
	})

	t.Run("city filter", func(t *testing.T) {
		code, body := get(t, ui, "/parks.html?city=Abuja&state=all")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Utako Motor Park")
		assert.NotContains(t, body, "Jibowu Motor Park")
		assert.Contains(t, body, `<option value="Abuja" selected>Abuja</option>`)
		assert.Contains(t, body, `<option value="Lagos">Lagos</option>`, "options do not shrink under filtering")
	})

	t.Run("empty state", func(t *testing.T) {
		code, body := get(t, ui, "/parks.html?city=Lagos&state=FCT")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "No parks found")
		assert.Contains(t, body, "Try adjusting your search or filters")
	})

	t.Run("invalid filter", func(t *testing.T) {
		code, _ := get(t, ui, "/parks.html?city=Lagos%FF")
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestRoutesPage(t *testing.T) {
	ui := createTestWebUI(t)

	t.Run("departure park filter", func(t *testing.T) {
		code, body := get(t, ui, "/routes.html?park="+url.QueryEscape("Jibowu Motor Park"))
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lagos - Abuja Express")
		assert.Contains(t, body, "Lagos - Ibadan Shuttle")
		assert.NotContains(t, body, "Lagos - Benin")
		assert.Contains(t, body, `<option value="Mile 2 Motor Park">Mile 2 Motor Park</option>`)
		assert.Contains(t, body, `href="/routes.html" class="active" aria-current="page"`)
	})

	t.Run("empty state", func(t *testing.T) {
		code, body := get(t, ui, "/routes.html?park=Nowhere")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "No routes found")
		assert.Contains(t, body, "Try adjusting your search or filters")
	})
}

func TestDetailsPage(t *testing.T) {
	ui := createTestWebUI(t)

	t.Run("park with routes", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=park&id=park-1")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Ikorodu Road, Jibowu, Yaba")
		assert.Contains(t, body, "Lagos - Abuja Express")
		assert.Contains(t, body, "₦3,000 - ₦5,000")
		assert.Contains(t, body, `id="map"`)
		assert.Contains(t, body, `data-lat="6.5167"`)
		assert.Contains(t, body, "leaflet.js")
		assert.NotContains(t, body, `aria-current="page"`)
	})

	t.Run("park without routes", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=park&id=park-5")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "No routes available from this park.")
	})

	t.Run("route with departure park", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=route&id=route-4")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Utako Motor Park to Kaduna")
		assert.Contains(t, body, "Departure Park Details")
		assert.Contains(t, body, "₦4,000 - ₦6,500")
		assert.Contains(t, body, `data-lat="9.0765"`)
	})

	t.Run("route with unknown departure park", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=route&id=route-6")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Mile 2 Motor Park to Enugu")
		assert.NotContains(t, body, "Departure Park Details")
		assert.NotContains(t, body, `id="map"`)
	})

	tests := []struct {
		target string
		text   string
	}{
		{"/details.html?type=park&id=nonexistent", "Park not found"},
		{"/details.html?type=route&id=nonexistent", "Route not found"},
		{"/details.html?type=park&id=" + url.QueryEscape("park;1"), "Park not found"},
		{"/details.html?type=stop&id=park-1", "Details not found"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			code, body := get(t, ui, tt.target)
			assert.Equal(t, http.StatusNotFound, code)
			assert.Contains(t, body, tt.text)
		})
	}
}

func TestSearchFlow(t *testing.T) {
	ui := createTestWebUI(t)

	t.Run("blank query does nothing", func(t *testing.T) {
		rr := postSearch(ui, "   ")
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Header().Get("Location"))
		assert.Empty(t, rr.Result().Cookies())
	})

	rr := postSearch(ui, "Lagos")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/parks.html?search=lagos", rr.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == app.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	t.Run("parks page shows handed-off results", func(t *testing.T) {
		code, body := get(t, ui, "/parks.html?search=lagos", cookie)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Jibowu Motor Park")
		assert.Contains(t, body, "Ojota New Garage")
		assert.NotContains(t, body, "Utako Motor Park")
		assert.NotContains(t, body, `id="city-filter"`)
	})

	t.Run("routes page shows handed-off results", func(t *testing.T) {
		code, body := get(t, ui, "/routes.html?search=lagos", cookie)
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lagos - Enugu Night Bus")
		assert.Contains(t, body, "Ibadan - Lagos")
		assert.NotContains(t, body, "Abuja - Kaduna")
	})

	t.Run("no session shows the empty state", func(t *testing.T) {
		code, body := get(t, ui, "/parks.html?search=lagos")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "No parks found")
	})

	t.Run("invalid query", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, postSearch(ui, strings.Repeat("b", 1001)).Code)
	})
}

func TestDebugIndexHandler(t *testing.T) {
	ui := createTestWebUI(t)

	code, body := get(t, ui, "/debug/?dataType=parks")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Dataset - Bus Parks")
	assert.Contains(t, body, "Jibowu Motor Park")

	_, body = get(t, ui, "/debug/?dataType=warnings")
	assert.Contains(t, body, "Dataset - Load Warnings")

	_, body = get(t, ui, "/debug/")
	assert.Contains(t, body, "Choose a data type")

	unavailable := createTestWebUIWithDataset(t, nil)
	_, body = get(t, unavailable, "/debug/?dataType=parks")
	assert.Contains(t, body, "Dataset unavailable")
}

func TestDatasetUnavailablePages(t *testing.T) {
	ui := createTestWebUIWithDataset(t, nil)

	code, body := get(t, ui, "/parks.html")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "No parks found")

	code, body = get(t, ui, "/details.html?type=park&id=park-1")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "Park not found")
}

func TestLayoutMobileMenu(t *testing.T) {
	ui := createTestWebUI(t)

	code, body := get(t, ui, "/parks.html")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="mobile-menu-toggle"`)
	assert.Contains(t, body, `aria-controls="site-nav"`)
	assert.Contains(t, body, `id="mobile-menu-overlay"`)
	assert.Contains(t, body, `<script src="/static/menu.js"></script>`)
}

func TestStaticFiles(t *testing.T) {
	ui := createTestWebUI(t)

	code, body := get(t, ui, "/static/map.js")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "L.tileLayer")

	code, body = get(t, ui, "/static/menu.js")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "mobile-menu-toggle")

	code, _ = get(t, ui, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, code)
}

const freeTextDocument = `{
  "busParks": [
    {"id": "park 7", "name": "Ojota <New> Park", "city": "Lagos", "state": "Lagos",
     "latitude": 6.5833, "longitude": 3.3833}
  ],
  "routes": [
    {"id": "r:1", "departureParkId": "park 7", "departureParkName": "Ojota <New> Park",
     "destination": "Ibadan", "routeName": "Lagos--Ibadan Express",
     "estimatedFareMin": 3000, "estimatedFareMax": 5000}
  ]
}`

func TestFreeTextRecords(t *testing.T) {
	ds, err := dataset.Parse([]byte(freeTextDocument), dataset.Options{StrictValidation: true})
	require.NoError(t, err)
	ui := createTestWebUIWithDataset(t, ds)

	t.Run("park details by spaced id", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=park&id=park%207")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Ojota &lt;New&gt; Park")
		assert.Contains(t, body, "Lagos--Ibadan Express")
	})

	t.Run("route details by id with a colon", func(t *testing.T) {
		code, body := get(t, ui, "/details.html?type=route&id=r%3A1")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lagos--Ibadan Express")
		assert.NotContains(t, body, "Route not found")
	})

	t.Run("departure park option filters routes", func(t *testing.T) {
		code, body := get(t, ui, "/routes.html?park=Ojota+%3CNew%3E+Park")
		require.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lagos--Ibadan Express")
		assert.NotContains(t, body, "No routes found")
	})

	t.Run("search text with a comment marker", func(t *testing.T) {
		rr := postSearch(ui, "lagos--ibadan")
		assert.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/parks.html?search=lagos--ibadan", rr.Header().Get("Location"))
	})
}
