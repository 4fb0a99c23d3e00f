package model

// NoSignalDbm is the sentinel written to every cell when a request
// carries no access points.
const NoSignalDbm = -100.0

// MaxGridDimension caps each heatmap axis regardless of the requested
// resolution or extent, bounding compute cost.
const MaxGridDimension = 500

// BoundingBox is a geographic axis-aligned box. SW is the south-west
// corner, NE the north-east corner.
type BoundingBox struct {
	SWLat float64 `json:"swLat"`
	SWLng float64 `json:"swLng"`
	NELat float64 `json:"neLat"`
	NELng float64 `json:"neLng"`
}

// HeatmapRequest bundles everything the engine needs for one
// computation. All fields are read-only for the duration of the call.
type HeatmapRequest struct {
	Bounds BoundingBox `json:"bounds"`
	Band   Band        `json:"band"`

	AccessPoints []AccessPoint `json:"accessPoints"`

	// Walls maps a floor index to the wall polylines on that floor.
	Walls map[int][]WallPolyline `json:"walls,omitempty"`

	// ActiveFloor is the observation floor the grid is computed for.
	ActiveFloor int `json:"activeFloor"`

	// ResolutionMeters is the requested cell edge length.
	ResolutionMeters float64 `json:"resolutionMeters"`

	Buildings []BuildingFloorInfo `json:"buildings,omitempty"`
}

// HeatmapGrid is the flat numeric output grid. Data is row-major with
// len(Data) == Width*Height; row 0 is the southern edge of Bounds and
// column 0 the western edge.
type HeatmapGrid struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Bounds BoundingBox `json:"bounds"`
	Data   []float64   `json:"data"`
}

// At returns the signal value at column x, row y.
func (g *HeatmapGrid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// CellCenter returns the geographic center of the cell at column x,
// row y by linear interpolation across the bounding box.
func (g *HeatmapGrid) CellCenter(x, y int) LatLng {
	return LatLng{
		Lat: g.Bounds.SWLat + (g.Bounds.NELat-g.Bounds.SWLat)*(float64(y)+0.5)/float64(g.Height),
		Lng: g.Bounds.SWLng + (g.Bounds.NELng-g.Bounds.SWLng)*(float64(x)+0.5)/float64(g.Width),
	}
}
