// core/attenuation.go
package core

import "github.com/signalsfoundry/coverage-mapper/model"

// DefaultFloorMaterial is the slab material assumed for a floor
// crossing when no building data describes it.
const DefaultFloorMaterial = "floor"

// DecomposeWalls flattens wall polylines into per-floor segment
// lists. Per-segment material overrides are honored when the override
// list covers the segment index; otherwise the polyline's default
// material applies. The result is built once per request and read
// concurrently by the grid workers.
func DecomposeWalls(walls map[int][]model.WallPolyline) map[int][]model.WallSegment {
	if len(walls) == 0 {
		return nil
	}
	out := make(map[int][]model.WallSegment, len(walls))
	for floor, lines := range walls {
		var segs []model.WallSegment
		for _, line := range lines {
			for i := 0; i+1 < len(line.Points); i++ {
				mat := line.Material
				if i < len(line.SegmentMaterials) && line.SegmentMaterials[i] != "" {
					mat = line.SegmentMaterials[i]
				}
				segs = append(segs, model.WallSegment{
					A:        line.Points[i],
					B:        line.Points[i+1],
					Material: mat,
				})
			}
		}
		if len(segs) > 0 {
			out[floor] = segs
		}
	}
	return out
}

// wallLossDb sums the material attenuation of every segment in segs
// that the straight line from a to b properly crosses.
func wallLossDb(segs []model.WallSegment, a, b model.LatLng, mats MaterialAttenuationProvider, band model.Band) float64 {
	var loss float64
	for i := range segs {
		if SegmentsIntersect(a, b, segs[i].A, segs[i].B) {
			loss += mats.AttenuationDb(segs[i].Material, band)
		}
	}
	return loss
}

// selectBuilding picks the building whose bounding box contains p,
// preferring the smallest-area box so a large generic footprint never
// shadows a more precise one. Returns nil when no box contains p.
func selectBuilding(buildings []model.BuildingFloorInfo, p model.LatLng) *model.BuildingFloorInfo {
	var best *model.BuildingFloorInfo
	for i := range buildings {
		b := &buildings[i]
		if !b.Contains(p) {
			continue
		}
		if best == nil || b.Area() < best.Area() {
			best = b
		}
	}
	return best
}

// floorLossDb accumulates slab attenuation for every floor crossed
// between apFloor and activeFloor. The building is resolved at the
// observation point first, then at the AP; if buildings were supplied
// but neither endpoint is inside one, both ends are outdoors and the
// loss is 0. With no building data at all, a default slab material is
// assumed per crossing.
func floorLossDb(buildings []model.BuildingFloorInfo, apPos, pt model.LatLng, apFloor, activeFloor int, mats MaterialAttenuationProvider, band model.Band) float64 {
	if apFloor == activeFloor {
		return 0
	}

	var building *model.BuildingFloorInfo
	if len(buildings) > 0 {
		building = selectBuilding(buildings, pt)
		if building == nil {
			building = selectBuilding(buildings, apPos)
		}
		if building == nil {
			return 0
		}
	}

	minFloor, maxFloor := apFloor, activeFloor
	if minFloor > maxFloor {
		minFloor, maxFloor = maxFloor, minFloor
	}

	var loss float64
	// The slab between floor f-1 and f belongs to the upper floor f,
	// so the crossing range is (minFloor, maxFloor].
	for f := minFloor + 1; f <= maxFloor; f++ {
		mat := DefaultFloorMaterial
		if building != nil {
			if m, ok := building.FloorMaterials[f]; ok && m != "" {
				mat = m
			}
		}
		loss += mats.AttenuationDb(mat, band)
	}
	return loss
}
