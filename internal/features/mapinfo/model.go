package mapinfo

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is a named point of interest shown on the community map.
type Marker struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    LatLng `json:"position"`
}

// MapConfig is everything the map page needs to render itself.
type MapConfig struct {
	Center      LatLng   `json:"center"`
	Zoom        int      `json:"zoom"`
	TileURL     string   `json:"tileUrl"`
	Attribution string   `json:"attribution"`
	Markers     []Marker `json:"markers"`
}
