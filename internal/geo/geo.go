// Package geo converts park coordinates into map markers and GeoJSON for the
// map display. It does no projection or routing; the browser renders tiles.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Gift-726/Bus-Routing/internal/dataset"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Marker is a labelled point on the map.
type Marker struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

func NewMarker(lat, lon float64, label string) (Marker, error) {
	if lat < -90 || lat > 90 {
		return Marker{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return Marker{}, fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, lon)
	}
	return Marker{Latitude: lat, Longitude: lon, Label: label}, nil
}

// MarkerForPark labels the park's location with its name.
func MarkerForPark(p *dataset.Park) (Marker, error) {
	if p == nil {
		return Marker{}, fmt.Errorf("%w: no park", ErrInvalidCoordinate)
	}
	return NewMarker(p.Latitude, p.Longitude, p.Name)
}

// Point returns the marker position. orb points are (lon, lat).
func (m Marker) Point() orb.Point {
	return orb.Point{m.Longitude, m.Latitude}
}

func (m Marker) Feature() *geojson.Feature {
	f := geojson.NewFeature(m.Point())
	f.Properties["label"] = m.Label
	return f
}

// ParkFeatures builds one point feature per park, in the given order. A
// non-empty collection carries the bbox of its parks.
func ParkFeatures(parks []*dataset.Park) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if b, ok := Bounds(parks); ok {
		fc.BBox = geojson.NewBBox(b)
	}
	for _, p := range parks {
		f := geojson.NewFeature(orb.Point{p.Longitude, p.Latitude})
		f.ID = p.ID
		f.Properties["id"] = p.ID
		f.Properties["name"] = p.Name
		f.Properties["city"] = p.City
		f.Properties["state"] = p.State
		fc.Append(f)
	}
	return fc
}

// Bounds returns the box enclosing every park. ok is false for no parks.
func Bounds(parks []*dataset.Park) (orb.Bound, bool) {
	if len(parks) == 0 {
		return orb.Bound{}, false
	}
	b := orb.Point{parks[0].Longitude, parks[0].Latitude}.Bound()
	for _, p := range parks[1:] {
		b = b.Extend(orb.Point{p.Longitude, p.Latitude})
	}
	return b, true
}
