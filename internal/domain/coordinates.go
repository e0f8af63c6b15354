package domain

// Immutable geographic coordinates (WGS84 degrees).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Return coordinates as [lon, lat] for GeoJSON compatibility.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }
