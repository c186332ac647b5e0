package geo

const (
	DefaultTileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultTileAttribution = "© OpenStreetMap contributors"
	DefaultMaxZoom         = 19
	DefaultZoom            = 13
)

// TileLayer configures the raster tiles drawn under the markers.
type TileLayer struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
	Zoom        int    `json:"zoom"`
}

// NewTileLayer fills blank settings with the OpenStreetMap defaults.
func NewTileLayer(urlTemplate, attribution string) TileLayer {
	if urlTemplate == "" {
		urlTemplate = DefaultTileURL
	}
	if attribution == "" {
		attribution = DefaultTileAttribution
	}
	return TileLayer{
		URLTemplate: urlTemplate,
		Attribution: attribution,
		MaxZoom:     DefaultMaxZoom,
		Zoom:        DefaultZoom,
	}
}
