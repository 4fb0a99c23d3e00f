// core/geometry.go
package core

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// EarthRadiusMeters is the mean Earth radius used for all geodesic
// calculations in the propagation layer.
const EarthRadiusMeters = 6371000.0

// HaversineDistanceMeters returns the great-circle distance between
// two points in meters. Identical points yield exactly 0 and the
// function is symmetric in its arguments.
func HaversineDistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// BearingDegrees returns the initial compass bearing from point 1 to
// point 2, normalized to [0,360). 0 is North, 90 is East.
func BearingDegrees(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lngDiff := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lngDiff)
	bearingDeg := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearingDeg+360, 360)
}

// SegmentsIntersect reports whether segment a1-a2 strictly crosses
// segment b1-b2. Collinear overlaps and endpoint touches return
// false: a wall only attenuates when the signal path properly passes
// through it.
func SegmentsIntersect(a1, a2, b1, b2 model.LatLng) bool {
	d1 := crossSign(b1, b2, a1)
	d2 := crossSign(b1, b2, a2)
	d3 := crossSign(a1, a2, b1)
	d4 := crossSign(a1, a2, b2)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// crossSign returns the z component of the cross product
// (b-o) x (p-o), treating longitude as x and latitude as y.
func crossSign(o, b, p model.LatLng) float64 {
	return (b.Lng-o.Lng)*(p.Lat-o.Lat) - (b.Lat-o.Lat)*(p.Lng-o.Lng)
}
