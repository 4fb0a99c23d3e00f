package api

import (
	"errors"
	"fmt"
	"math"

	"github.com/signalsfoundry/coverage-mapper/model"
)

var (
	ErrInvalidBounds     = errors.New("invalid bounding box")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrInvalidBand       = errors.New("invalid band")
	ErrInvalidAP         = errors.New("invalid access point")
	ErrInvalidWall       = errors.New("invalid wall polyline")
	ErrInvalidBuilding   = errors.New("invalid building")
)

// ValidateRequest rejects malformed input before it reaches the
// engine: non-finite coordinates, a non-positive resolution, an
// unknown band, and inconsistent per-segment override lists. An
// empty access point list is valid; the engine answers it with a
// sentinel grid.
func ValidateRequest(req *model.HeatmapRequest) error {
	if !finite(req.Bounds.SWLat, req.Bounds.SWLng, req.Bounds.NELat, req.Bounds.NELng) {
		return fmt.Errorf("%w: non-finite coordinate", ErrInvalidBounds)
	}
	if req.Bounds.NELat < req.Bounds.SWLat || req.Bounds.NELng < req.Bounds.SWLng {
		return fmt.Errorf("%w: north-east corner south or west of south-west corner", ErrInvalidBounds)
	}
	if !finite(req.ResolutionMeters) || req.ResolutionMeters <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidResolution, req.ResolutionMeters)
	}
	if !req.Band.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidBand, req.Band)
	}

	for i := range req.AccessPoints {
		ap := &req.AccessPoints[i]
		if !finite(ap.Latitude, ap.Longitude, ap.TxPowerDbm, ap.AntennaGainDbi, ap.OrientationDeg) {
			return fmt.Errorf("%w: %q has a non-finite field", ErrInvalidAP, ap.Model)
		}
		switch ap.MountType {
		case "", model.MountCeiling, model.MountWall, model.MountDesktop:
		default:
			return fmt.Errorf("%w: %q has unknown mount type %q", ErrInvalidAP, ap.Model, ap.MountType)
		}
	}

	for floor, lines := range req.Walls {
		for i := range lines {
			line := &lines[i]
			if len(line.Points) < 2 {
				return fmt.Errorf("%w: floor %d polyline %d has %d points", ErrInvalidWall, floor, i, len(line.Points))
			}
			for _, p := range line.Points {
				if !finite(p.Lat, p.Lng) {
					return fmt.Errorf("%w: floor %d polyline %d has a non-finite vertex", ErrInvalidWall, floor, i)
				}
			}
			if n := len(line.SegmentMaterials); n != 0 && n != line.SegmentCount() {
				return fmt.Errorf("%w: floor %d polyline %d has %d segment materials for %d segments",
					ErrInvalidWall, floor, i, n, line.SegmentCount())
			}
		}
	}

	for i := range req.Buildings {
		b := &req.Buildings[i]
		if !finite(b.SWLat, b.SWLng, b.NELat, b.NELng) {
			return fmt.Errorf("%w: building %d has a non-finite corner", ErrInvalidBuilding, i)
		}
	}

	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
