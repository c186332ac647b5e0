package restapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
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

func testConfig() appconf.Config {
	cfg := appconf.Default()
	cfg.Env = appconf.Test
	cfg.RateLimit = 0
	return cfg
}

// createTestApi creates a RestAPI over the test fixture dataset with an
// in-memory session store.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()
	return createTestApiWithDataset(t, models.LoadFixtureDataset(t))
}

func createTestApiWithDataset(t *testing.T, ds *dataset.Dataset) *RestAPI {
	t.Helper()
	sessions, err := sessiondb.NewClient(sessiondb.NewConfig(":memory:", appconf.Test, nil, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	logger := logging.NewStructuredLogger(io.Discard, slog.LevelDebug)
	api := NewRestAPI(app.New(testConfig(), logger, query.NewEngine(ds), sessions))
	t.Cleanup(api.Close)
	return api
}

func newTestRouter(api *RestAPI) *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

// serveAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded model.
func serveAndRetrieveEndpoint(t *testing.T, endpoint string) (*RestAPI, *http.Response, models.ResponseModel) {
	api := createTestApi(t)
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	return api, resp, model
}

func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	server := httptest.NewServer(newTestRouter(api))
	defer server.Close()
	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}

// serveRequest runs req through the API router without a network round trip.
func serveRequest(api *RestAPI, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	newTestRouter(api).ServeHTTP(rr, req)
	return rr
}

func decodeModel(t *testing.T, body io.Reader) models.ResponseModel {
	t.Helper()
	var response models.ResponseModel
	require.NoError(t, json.NewDecoder(body).Decode(&response))
	return response
}

func dataMap(t *testing.T, model models.ResponseModel) map[string]interface{} {
	t.Helper()
	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", model.Data)
	return data
}

func listIDs(t *testing.T, list interface{}) []string {
	t.Helper()
	items, ok := list.([]interface{})
	require.True(t, ok, "expected a list, got %T", list)
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.(map[string]interface{})["id"].(string))
	}
	return ids
}

func TestCompressionMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		largeResponse := strings.Repeat(`{"test": "data"}`, 1000)
		_, _ = w.Write([]byte(largeResponse))
	})

	handler := CompressionMiddleware(testHandler)

	t.Run("compresses when the client accepts gzip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/parks.json", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
		require.NoError(t, err)
		decompressed, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat(`{"test": "data"}`, 1000), string(decompressed))
	})

	t.Run("passes through without Accept-Encoding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/parks.json", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Len(t, rr.Body.String(), len(`{"test": "data"}`)*1000)
	})

	t.Run("small responses are not compressed", func(t *testing.T) {
		small := CompressionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()
		small.ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, `{"ok":true}`, rr.Body.String())
	})
}

func TestCurrentTimeHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/current-time.json")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 2, model.Version)

	data := dataMap(t, model)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, float64(models.ResponseCurrentTime()), entry["time"], 5000)
}
