package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataPath = "../../testdata/bus-data.json"

func TestLoadLocalFile(t *testing.T) {
	ds, err := Load(context.Background(), sampleDataPath, Options{})
	require.NoError(t, err)

	assert.Len(t, ds.Parks(), 5)
	assert.Len(t, ds.Routes(), 6)
	assert.Empty(t, ds.Warnings())
	assert.Equal(t, sampleDataPath, ds.Source())
	assert.False(t, ds.LoadedAt().IsZero())

	park := ds.Parks()[0]
	assert.Equal(t, Park{
		ID:             "park-1",
		Name:           "Jibowu Motor Park",
		City:           "Lagos",
		State:          "Lagos",
		Address:        "Ikorodu Road, Jibowu, Yaba",
		ContactPhone:   "+234 803 000 0001",
		TransportUnion: "NURTW",
		Latitude:       6.5167,
		Longitude:      3.3731,
	}, park)

	route := ds.Routes()[0]
	assert.Equal(t, "park-1", route.DepartureParkID)
	assert.Equal(t, 15000.0, route.EstimatedFareMin)
	assert.Equal(t, 22000.0, route.EstimatedFareMax)
}

func TestLoadPreservesDocumentOrder(t *testing.T) {
	ds, err := Load(context.Background(), sampleDataPath, Options{})
	require.NoError(t, err)

	ids := make([]string, 0, len(ds.Routes()))
	for _, r := range ds.Routes() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"route-1", "route-2", "route-3", "route-4", "route-5", "route-6"}, ids)
}

func TestLoadMissingFile(t *testing.T) {
	ds, err := Load(context.Background(), filepath.Join("testdata", "does-not-exist.json"), Options{})
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestLoadFromURL(t *testing.T) {
	body, err := os.ReadFile(sampleDataPath)
	require.NoError(t, err)

	t.Run("downloads and parses the document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(body)
		}))
		defer server.Close()

		ds, err := Load(context.Background(), server.URL+"/data/bus-data.json", Options{})
		require.NoError(t, err)
		assert.Len(t, ds.Parks(), 5)
		assert.Equal(t, server.URL+"/data/bus-data.json", ds.Source())
	})

	t.Run("non-200 status leaves the dataset unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		ds, err := Load(context.Background(), server.URL+"/missing.json", Options{})
		assert.Nil(t, ds)
		assert.ErrorIs(t, err, ErrDatasetUnavailable)
	})

	t.Run("cancelled context leaves the dataset unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		ds, err := Load(ctx, server.URL, Options{})
		assert.Nil(t, ds)
		assert.ErrorIs(t, err, ErrDatasetUnavailable)
	})
}

func TestIsRemoteSource(t *testing.T) {
	assert.True(t, IsRemoteSource("https://example.org/bus-data.json"))
	assert.True(t, IsRemoteSource("http://localhost/bus-data.json"))
	assert.False(t, IsRemoteSource("data/bus-data.json"))
	assert.False(t, IsRemoteSource("/srv/https-data.json"))
}

func TestParseMalformedDocument(t *testing.T) {
	for _, body := range []string{"not json", `[1, 2, 3]`, `{"busParks": {"id": "x"}}`} {
		t.Run(body, func(t *testing.T) {
			ds, err := Parse([]byte(body), Options{})
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, ErrDatasetUnavailable)
		})
	}
}

func TestParseEmptyDocument(t *testing.T) {
	ds, err := Parse([]byte(`{}`), Options{})
	require.NoError(t, err)
	assert.Empty(t, ds.Parks())
	assert.Empty(t, ds.Routes())
	assert.Empty(t, ds.Warnings())
}

func TestParseDropsInvalidRecords(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "malformed.json"))
	require.NoError(t, err)

	ds, err := Parse(b, Options{})
	require.NoError(t, err)

	parkIDs := make([]string, 0)
	for _, p := range ds.Parks() {
		parkIDs = append(parkIDs, p.ID)
	}
	assert.Equal(t, []string{"p1", "p5"}, parkIDs, "zero coordinates are valid, missing ones are not")
	assert.Equal(t, "Jibowu Motor Park", ds.Parks()[0].Name, "the first record wins on duplicate ids")

	routeIDs := make([]string, 0)
	for _, r := range ds.Routes() {
		routeIDs = append(routeIDs, r.ID)
	}
	assert.Equal(t, []string{"r1", "r3"}, routeIDs, "orphaned routes and inverted fares are kept")

	warnings := ds.Warnings()
	require.Len(t, warnings, 6)

	assert.Equal(t, Warning{Kind: "park", Index: 1, ID: "p2", Problems: []string{"name is required"}}, warnings[0])
	assert.Equal(t, "park", warnings[1].Kind)
	assert.Equal(t, "p3", warnings[1].ID)
	assert.ElementsMatch(t, []string{"latitude is required", "longitude is required"}, warnings[1].Problems)
	assert.Equal(t, Warning{Kind: "park", Index: 3, ID: "p1", Problems: []string{"duplicate id"}}, warnings[2])
	assert.Equal(t, Warning{Kind: "park", Index: 4, ID: "p4", Problems: []string{"latitude must be at most 90"}}, warnings[3])
	assert.Equal(t, "p6", warnings[4].ID)
	assert.Contains(t, warnings[4].Problems[0], "malformed record")
	assert.Equal(t, "route", warnings[5].Kind)
	assert.Equal(t, "r2", warnings[5].ID)
	assert.ElementsMatch(t, []string{"estimatedFareMin is required", "estimatedFareMax is required"}, warnings[5].Problems)
}

func TestParseStrictValidation(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("testdata", "malformed.json"))
	require.NoError(t, err)

	ds, err := Parse(b, Options{StrictValidation: true})
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, ErrDatasetUnavailable)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "p2", verr.Warning.ID)
	assert.Contains(t, verr.Error(), "name is required")
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: "route", Index: 2, ID: "r9", Problems: []string{"destination is required", "routeName is required"}}
	assert.Equal(t, "route[2] (r9): destination is required; routeName is required", w.String())

	anonymous := Warning{Kind: "park", Index: 0, Problems: []string{"id is required"}}
	assert.Equal(t, "park[0]: id is required", anonymous.String())
}

func TestNilDatasetAccessors(t *testing.T) {
	var ds *Dataset
	assert.Nil(t, ds.Parks())
	assert.Nil(t, ds.Routes())
	assert.Nil(t, ds.Warnings())
	assert.Empty(t, ds.Source())
	assert.True(t, ds.LoadedAt().IsZero())
}
