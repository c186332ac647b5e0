package models

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
)

// GetFixturePath returns the absolute path of a file under the repository's
// testdata directory. Callers must sit two directories below the root.
func GetFixturePath(t *testing.T, fixturePath string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", fixturePath))
	if err != nil {
		t.Fatalf("Failed to get absolute path to testdata/%s: %v", fixturePath, err)
	}

	return absPath
}

// LoadFixtureDataset loads testdata/bus-data.json with default options,
// failing the test if the file cannot be read.
func LoadFixtureDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	ds, err := dataset.Load(context.Background(), GetFixturePath(t, "bus-data.json"), dataset.Options{})
	if err != nil {
		t.Fatalf("Failed to load fixture dataset: %v", err)
	}
	return ds
}
