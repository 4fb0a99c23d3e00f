package model

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// WallPolyline is an ordered run of wall vertices on one floor. The
// polyline carries a default material and, optionally, a per-segment
// override list whose length must equal the segment count
// (len(Points)-1).
type WallPolyline struct {
	Floor    int      `json:"floor"`
	Points   []LatLng `json:"points"`
	Material string   `json:"material"`

	// SegmentMaterials overrides Material per segment when non-empty.
	SegmentMaterials []string `json:"segmentMaterials,omitempty"`
}

// SegmentCount returns the number of wall segments the polyline
// decomposes into.
func (w *WallPolyline) SegmentCount() int {
	if len(w.Points) < 2 {
		return 0
	}
	return len(w.Points) - 1
}

// WallSegment is a single straight wall piece produced by decomposing
// a WallPolyline. Segments are what the ray-casting attenuation layer
// operates on.
type WallSegment struct {
	A        LatLng
	B        LatLng
	Material string
}
