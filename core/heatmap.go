// core/heatmap.go
package core

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/signalsfoundry/coverage-mapper/internal/logging"
	"github.com/signalsfoundry/coverage-mapper/model"
)

// Engine computes RSSI heatmap grids. It holds no per-request state:
// every computation is local to the ComputeHeatmap call, so a single
// Engine can serve concurrent requests.
type Engine struct {
	Patterns  AntennaPatternProvider
	Materials MaterialAttenuationProvider
	Mounts    MountTypeResolver

	// PathLossExponent is the log-distance exponent n. Indoor
	// propagation is denser than free space (n=2.0).
	PathLossExponent float64

	// FloorHeightMeters converts floor separation into a vertical
	// distance leg.
	FloorHeightMeters float64

	// Workers bounds the number of concurrent row workers. <=0 means
	// GOMAXPROCS.
	Workers int

	Log      logging.Logger
	Recorder ComputeRecorder
}

// NewEngine builds an Engine with the reference defaults: path-loss
// exponent 2.8 and 3.0 m floor height. materials must be non-nil;
// nil patterns and mounts fall back to isotropic / ceiling defaults.
func NewEngine(patterns AntennaPatternProvider, materials MaterialAttenuationProvider, mounts MountTypeResolver) *Engine {
	if patterns == nil {
		patterns = IsotropicPatterns{}
	}
	if mounts == nil {
		mounts = CeilingMounts{}
	}
	return &Engine{
		Patterns:          patterns,
		Materials:         materials,
		Mounts:            mounts,
		PathLossExponent:  2.8,
		FloorHeightMeters: 3.0,
		Log:               logging.Noop(),
	}
}

// ComputeHeatmap converts the request's bounding box and resolution
// into a capped pixel grid and fills every cell with the strongest
// signal across all APs. Rows are computed in parallel; the context
// is honored at row boundaries, so an abandoned computation returns
// ctx.Err() without finishing the grid.
//
// Degenerate boxes clamp to a 1x1 grid rather than failing; the
// engine raises no errors for valid geometric input.
func (e *Engine) ComputeHeatmap(ctx context.Context, req *model.HeatmapRequest) (*model.HeatmapGrid, error) {
	start := time.Now()

	resolution := req.ResolutionMeters
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		resolution = 1.0
	}

	sw := model.LatLng{Lat: req.Bounds.SWLat, Lng: req.Bounds.SWLng}
	widthMeters := HaversineDistanceMeters(sw.Lat, sw.Lng, sw.Lat, req.Bounds.NELng)
	heightMeters := HaversineDistanceMeters(sw.Lat, sw.Lng, req.Bounds.NELat, sw.Lng)

	width := gridDimension(widthMeters, resolution)
	height := gridDimension(heightMeters, resolution)

	grid := &model.HeatmapGrid{
		Width:  width,
		Height: height,
		Bounds: req.Bounds,
		Data:   make([]float64, width*height),
	}

	if len(req.AccessPoints) == 0 {
		for i := range grid.Data {
			grid.Data[i] = model.NoSignalDbm
		}
		e.record(grid, 0, start)
		return grid, nil
	}

	env := &siteEnvironment{
		segmentsByFloor: DecomposeWalls(req.Walls),
		buildings:       req.Buildings,
		freqMhz:         e.Materials.CenterFrequencyMhz(req.Band),
		band:            req.Band,
		activeFloor:     req.ActiveFloor,
	}

	workers := e.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}

	// Workers pull row indices and write disjoint slices of the
	// output array, so no locking is needed.
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				e.computeRow(grid, y, req, env)
			}
		}()
	}

	var canceled bool
feed:
	for y := 0; y < height; y++ {
		select {
		case <-ctx.Done():
			canceled = true
			break feed
		case rows <- y:
		}
	}
	close(rows)
	wg.Wait()

	if canceled {
		return nil, ctx.Err()
	}

	e.record(grid, len(req.AccessPoints), start)
	return grid, nil
}

// computeRow fills one grid row with the per-cell maximum signal.
func (e *Engine) computeRow(grid *model.HeatmapGrid, y int, req *model.HeatmapRequest, env *siteEnvironment) {
	for x := 0; x < grid.Width; x++ {
		pt := grid.CellCenter(x, y)
		best := math.Inf(-1)
		for i := range req.AccessPoints {
			if s := e.signalDbm(&req.AccessPoints[i], pt, env); s > best {
				best = s
			}
		}
		grid.Data[y*grid.Width+x] = best
	}
}

func (e *Engine) record(grid *model.HeatmapGrid, aps int, start time.Time) {
	elapsed := time.Since(start)
	if e.Recorder != nil {
		e.Recorder.ObserveCompute(len(grid.Data), aps, elapsed.Seconds())
	}
	if e.Log != nil {
		e.Log.Debug(context.Background(), "heatmap computed",
			logging.Int("width", grid.Width),
			logging.Int("height", grid.Height),
			logging.Int("access_points", aps),
			logging.String("elapsed", elapsed.String()),
		)
	}
}

// gridDimension converts an edge length to a cell count, clamped to
// [1, MaxGridDimension].
func gridDimension(meters, resolution float64) int {
	cells := int(meters / resolution)
	if cells < 1 {
		return 1
	}
	if cells > model.MaxGridDimension {
		return model.MaxGridDimension
	}
	return cells
}
