package core

import (
	"math"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// stubMaterials is a deterministic MaterialAttenuationProvider for
// tests: one frequency, one wall value, one floor-slab value.
type stubMaterials struct {
	freqMhz float64
	wallDb  float64
	floorDb float64
}

func (s stubMaterials) AttenuationDb(materialID string, _ model.Band) float64 {
	if materialID == DefaultFloorMaterial {
		return s.floorDb
	}
	return s.wallDb
}

func (s stubMaterials) CenterFrequencyMhz(model.Band) float64 { return s.freqMhz }

// tablePatterns reports angle-dependent gains so tests can tell which
// table a lookup came from: the azimuth table answers +angle/100 dB,
// the elevation table -angle/100 dB.
type tablePatterns struct {
	omniVariant  bool
	omniFallback bool
}

func (p tablePatterns) AzimuthGainDb(_ string, _ model.Band, angleDeg int, _ string) float64 {
	return float64(angleDeg) / 100
}

func (p tablePatterns) ElevationGainDb(_ string, _ model.Band, angleDeg int, _ string) float64 {
	return -float64(angleDeg) / 100
}

func (p tablePatterns) HasOmniVariant(string) bool             { return p.omniVariant }
func (p tablePatterns) OmniIsFallback(string, model.Band) bool { return p.omniFallback }

// testEngine builds an engine with flat patterns and the given stub
// materials, single-threaded for deterministic tests.
func testEngine(mats stubMaterials) *Engine {
	e := NewEngine(IsotropicPatterns{}, mats, CeilingMounts{})
	e.Workers = 1
	return e
}

// pointNorthOf returns a point the given number of meters due north
// of (lat, lng).
func pointNorthOf(lat, lng, meters float64) model.LatLng {
	return model.LatLng{Lat: lat + meters/(EarthRadiusMeters*math.Pi/180), Lng: lng}
}

// pointEastOf returns a point the given number of meters due east of
// (lat, lng).
func pointEastOf(lat, lng, meters float64) model.LatLng {
	return model.LatLng{
		Lat: lat,
		Lng: lng + meters/(EarthRadiusMeters*math.Pi/180*math.Cos(lat*math.Pi/180)),
	}
}
