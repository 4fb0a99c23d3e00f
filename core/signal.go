// core/signal.go
package core

import (
	"math"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// minDistanceMeters floors both the 2D and 3D distances to avoid the
// log-distance singularity directly under an AP.
const minDistanceMeters = 0.1

// siteEnvironment holds the per-request precomputation shared by all
// grid cells: decomposed wall segments, building list, and the band's
// center frequency. It is immutable once built.
type siteEnvironment struct {
	segmentsByFloor map[int][]model.WallSegment
	buildings       []model.BuildingFloorInfo
	freqMhz         float64
	band            model.Band
	activeFloor     int
}

// signalDbm computes the received signal strength from one AP at one
// observation point on the active floor. All state is local to the
// call; inputs are never mutated.
func (e *Engine) signalDbm(ap *model.AccessPoint, pt model.LatLng, env *siteEnvironment) float64 {
	apPos := ap.Position()

	// Distances. The vertical leg is the floor separation times the
	// nominal floor height.
	dist2D := HaversineDistanceMeters(apPos.Lat, apPos.Lng, pt.Lat, pt.Lng)
	if dist2D < minDistanceMeters {
		dist2D = minDistanceMeters
	}
	floorSep := ap.Floor - env.activeFloor
	if floorSep < 0 {
		floorSep = -floorSep
	}
	vertical := float64(floorSep) * e.FloorHeightMeters
	dist3D := math.Sqrt(dist2D*dist2D + vertical*vertical)
	if dist3D < minDistanceMeters {
		dist3D = minDistanceMeters
	}

	pathLoss := e.pathLossDb(dist3D, env.freqMhz)

	// Pattern angles relative to the AP's forward azimuth.
	azimuth := int(math.Mod(BearingDegrees(apPos.Lat, apPos.Lng, pt.Lat, pt.Lng)-ap.OrientationDeg+360, 360))

	elevation := 90 // horizon when on the same floor
	if floorSep != 0 {
		elevation = int(math.Atan2(dist2D, vertical) * 180 / math.Pi)
		if elevation < 0 {
			elevation = 0
		} else if elevation > 358 {
			elevation = 358
		}
	}

	mount := ap.MountType
	if mount == "" {
		mount = e.Mounts.DefaultMountType(ap.Model)
	}
	orient := resolveOrientation(e.Patterns, ap, mount, env.band)
	elevation = orient.adjustElevation(elevation)

	var patternGain float64
	if orient.swapAxes {
		patternGain = e.Patterns.ElevationGainDb(ap.Model, env.band, azimuth, ap.AntennaMode) +
			e.Patterns.AzimuthGainDb(ap.Model, env.band, elevation, ap.AntennaMode)
	} else {
		patternGain = e.Patterns.AzimuthGainDb(ap.Model, env.band, azimuth, ap.AntennaMode) +
			e.Patterns.ElevationGainDb(ap.Model, env.band, elevation, ap.AntennaMode)
	}

	// Walls on the AP's floor always obstruct; on a cross-floor path
	// the observation floor's walls obstruct as well.
	wallLoss := wallLossDb(env.segmentsByFloor[ap.Floor], apPos, pt, e.Materials, env.band)
	if ap.Floor != env.activeFloor {
		wallLoss += wallLossDb(env.segmentsByFloor[env.activeFloor], apPos, pt, e.Materials, env.band)
	}

	floorLoss := floorLossDb(env.buildings, apPos, pt, ap.Floor, env.activeFloor, e.Materials, env.band)

	return ap.TxPowerDbm + ap.AntennaGainDbi + patternGain - pathLoss - wallLoss - floorLoss
}

// pathLossDb is a log-distance indoor path-loss model. The exponent
// exceeds the free-space value of 2.0 to account for indoor clutter.
func (e *Engine) pathLossDb(distMeters, freqMhz float64) float64 {
	return 10*e.PathLossExponent*math.Log10(distMeters) + 20*math.Log10(freqMhz) - 27.55
}
