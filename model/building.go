package model

// BuildingFloorInfo describes one building as an axis-aligned
// bounding box plus the slab material separating each floor from the
// one below it. Multiple buildings may be supplied per request and
// their boxes may overlap; containment lookups resolve to the
// smallest containing box.
type BuildingFloorInfo struct {
	SWLat float64 `json:"swLat"`
	SWLng float64 `json:"swLng"`
	NELat float64 `json:"neLat"`
	NELng float64 `json:"neLng"`

	// FloorMaterials maps a floor index to the material of the slab
	// under that floor. Missing floors fall back to a generic slab.
	FloorMaterials map[int]string `json:"floorMaterials,omitempty"`
}

// Contains reports whether the point lies inside the bounding box
// (edges inclusive).
func (b *BuildingFloorInfo) Contains(p LatLng) bool {
	return p.Lat >= b.SWLat && p.Lat <= b.NELat &&
		p.Lng >= b.SWLng && p.Lng <= b.NELng
}

// Area returns the bounding-box area in squared degrees. Only used to
// rank overlapping buildings, so the unit does not matter.
func (b *BuildingFloorInfo) Area() float64 {
	return (b.NELat - b.SWLat) * (b.NELng - b.SWLng)
}
