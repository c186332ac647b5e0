package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Park is a bus terminal / departure facility.
type Park struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Address        string  `json:"address"`
	ContactPhone   string  `json:"contactPhone"`
	TransportUnion string  `json:"transportUnion"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
}

// Route is a bus service from one departure park to a destination.
// DepartureParkID is not enforced: it may name a park that does not exist.
type Route struct {
	ID                string  `json:"id"`
	DepartureParkID   string  `json:"departureParkId"`
	DepartureParkName string  `json:"departureParkName"`
	Destination       string  `json:"destination"`
	RouteName         string  `json:"routeName"`
	EstimatedFareMin  float64 `json:"estimatedFareMin"`
	EstimatedFareMax  float64 `json:"estimatedFareMax"`
}

// Warning describes a record that was dropped while loading.
type Warning struct {
	Kind     string   `json:"kind"`
	Index    int      `json:"index"`
	ID       string   `json:"id,omitempty"`
	Problems []string `json:"problems"`
}

func (w Warning) String() string {
	if w.ID != "" {
		return fmt.Sprintf("%s[%d] (%s): %s", w.Kind, w.Index, w.ID, strings.Join(w.Problems, "; "))
	}
	return fmt.Sprintf("%s[%d]: %s", w.Kind, w.Index, strings.Join(w.Problems, "; "))
}

// Dataset is the read-only handle over the loaded parks and routes. It is
// built once and never mutated, so it can be shared between goroutines.
type Dataset struct {
	parks    []Park
	routes   []Route
	warnings []Warning
	source   string
	loadedAt time.Time
}

// Parks returns the parks in document order. Callers must not modify the slice.
func (d *Dataset) Parks() []Park {
	if d == nil {
		return nil
	}
	return d.parks
}

// Routes returns the routes in document order. Callers must not modify the slice.
func (d *Dataset) Routes() []Route {
	if d == nil {
		return nil
	}
	return d.routes
}

// Warnings lists the records dropped during loading.
func (d *Dataset) Warnings() []Warning {
	if d == nil {
		return nil
	}
	return d.warnings
}

func (d *Dataset) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

func (d *Dataset) LoadedAt() time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.loadedAt
}
