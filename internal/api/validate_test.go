package api

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/signalsfoundry/coverage-mapper/model"
)

func minimalRequest() model.HeatmapRequest {
	return model.HeatmapRequest{
		Bounds:           model.BoundingBox{SWLat: 40, SWLng: -74, NELat: 40.001, NELng: -73.999},
		Band:             model.Band5G,
		ResolutionMeters: 1,
	}
}

func TestValidateRequestAcceptsMinimalRequest(t *testing.T) {
	req := minimalRequest()
	assert.NoError(t, ValidateRequest(&req))
}

func TestValidateRequestBounds(t *testing.T) {
	req := minimalRequest()
	req.Bounds.SWLat = math.NaN()
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidBounds)

	req = minimalRequest()
	req.Bounds.NELng = math.Inf(1)
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidBounds)

	req = minimalRequest()
	req.Bounds.NELat, req.Bounds.SWLat = req.Bounds.SWLat, req.Bounds.NELat
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidBounds)
}

func TestValidateRequestResolutionAndBand(t *testing.T) {
	req := minimalRequest()
	req.ResolutionMeters = 0
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidResolution)

	req = minimalRequest()
	req.ResolutionMeters = math.NaN()
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidResolution)

	req = minimalRequest()
	req.Band = "am"
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidBand)
}

func TestValidateRequestAccessPoints(t *testing.T) {
	req := minimalRequest()
	req.AccessPoints = []model.AccessPoint{{Latitude: math.NaN(), Model: "AP-PRO"}}
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidAP)

	req = minimalRequest()
	req.AccessPoints = []model.AccessPoint{{MountType: "hover", Model: "AP-PRO"}}
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidAP)

	// An empty AP list is valid input.
	req = minimalRequest()
	req.AccessPoints = nil
	assert.NoError(t, ValidateRequest(&req))
}

func TestValidateRequestWalls(t *testing.T) {
	point := model.LatLng{Lat: 40.0005, Lng: -73.9995}

	req := minimalRequest()
	req.Walls = map[int][]model.WallPolyline{
		0: {{Points: []model.LatLng{point}, Material: "drywall"}},
	}
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidWall)

	req = minimalRequest()
	req.Walls = map[int][]model.WallPolyline{
		0: {{
			Points:           []model.LatLng{point, {Lat: 40.0006, Lng: -73.9995}, {Lat: 40.0006, Lng: -73.9994}},
			Material:         "drywall",
			SegmentMaterials: []string{"glass"}, // 2 segments, 1 override
		}},
	}
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidWall)

	req = minimalRequest()
	req.Walls = map[int][]model.WallPolyline{
		0: {{
			Points:           []model.LatLng{point, {Lat: 40.0006, Lng: -73.9995}, {Lat: 40.0006, Lng: -73.9994}},
			Material:         "drywall",
			SegmentMaterials: []string{"glass", "brick"},
		}},
	}
	assert.NoError(t, ValidateRequest(&req))
}

func TestValidateRequestBuildings(t *testing.T) {
	req := minimalRequest()
	req.Buildings = []model.BuildingFloorInfo{{SWLat: 40, SWLng: math.Inf(-1), NELat: 41, NELng: -73}}
	assert.ErrorIs(t, ValidateRequest(&req), ErrInvalidBuilding)
}
