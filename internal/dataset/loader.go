package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Options controls how a dataset document is loaded.
type Options struct {
	// StrictValidation fails the whole load on the first invalid record
	// instead of dropping it with a warning.
	StrictValidation bool
	// HTTPClient is used for http(s) sources. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

type document struct {
	BusParks []json.RawMessage `json:"busParks"`
	Routes   []json.RawMessage `json:"routes"`
}

// IsRemoteSource reports whether source is fetched over HTTP rather than read from disk.
func IsRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load fetches the dataset document from a local path or an http(s) URL and
// maps it into typed records. Any failure to obtain or parse the document is
// reported as ErrDatasetUnavailable.
func Load(ctx context.Context, source string, opts Options) (*Dataset, error) {
	b, err := rawData(ctx, source, opts.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}

	ds, err := Parse(b, opts)
	if err != nil {
		return nil, err
	}
	ds.source = source
	return ds, nil
}

func rawData(ctx context.Context, source string, client *http.Client) ([]byte, error) {
	if !IsRemoteSource(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local data file: %w", err)
		}
		return b, nil
	}

	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building data request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading data: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading data: unexpected status %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading data response: %w", err)
	}
	return b, nil
}

// Parse maps a dataset document into a Dataset. Invalid records and records
// whose id repeats an earlier one are dropped and reported in Warnings, unless
// opts.StrictValidation is set.
func Parse(b []byte, opts Options) (*Dataset, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: error parsing data document: %w", ErrDatasetUnavailable, err)
	}

	ds := &Dataset{
		parks:    make([]Park, 0, len(doc.BusParks)),
		routes:   make([]Route, 0, len(doc.Routes)),
		loadedAt: time.Now(),
	}

	reject := func(w Warning) error {
		if opts.StrictValidation {
			return fmt.Errorf("%w: %w", ErrDatasetUnavailable, &ValidationError{Warning: w})
		}
		ds.warnings = append(ds.warnings, w)
		return nil
	}

	seenParks := make(map[string]bool, len(doc.BusParks))
	for i, raw := range doc.BusParks {
		var rec parkRecord
		if problems := decodeRecord(raw, &rec); len(problems) > 0 {
			if err := reject(Warning{Kind: "park", Index: i, ID: recordID(raw), Problems: problems}); err != nil {
				return nil, err
			}
			continue
		}
		if seenParks[rec.ID] {
			if err := reject(Warning{Kind: "park", Index: i, ID: rec.ID, Problems: []string{"duplicate id"}}); err != nil {
				return nil, err
			}
			continue
		}
		seenParks[rec.ID] = true
		ds.parks = append(ds.parks, rec.toPark())
	}

	seenRoutes := make(map[string]bool, len(doc.Routes))
	for i, raw := range doc.Routes {
		var rec routeRecord
		if problems := decodeRecord(raw, &rec); len(problems) > 0 {
			if err := reject(Warning{Kind: "route", Index: i, ID: recordID(raw), Problems: problems}); err != nil {
				return nil, err
			}
			continue
		}
		if seenRoutes[rec.ID] {
			if err := reject(Warning{Kind: "route", Index: i, ID: rec.ID, Problems: []string{"duplicate id"}}); err != nil {
				return nil, err
			}
			continue
		}
		seenRoutes[rec.ID] = true
		ds.routes = append(ds.routes, rec.toRoute())
	}

	return ds, nil
}
