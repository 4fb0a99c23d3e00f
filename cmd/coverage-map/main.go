// coverage-map computes a signal heatmap for a saved site scenario and
// writes the grid as JSON, optionally rendering it to a PNG.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/signalsfoundry/coverage-mapper/core"
	"github.com/signalsfoundry/coverage-mapper/internal/antenna"
	"github.com/signalsfoundry/coverage-mapper/internal/api"
	"github.com/signalsfoundry/coverage-mapper/internal/logging"
	"github.com/signalsfoundry/coverage-mapper/internal/materials"
	"github.com/signalsfoundry/coverage-mapper/internal/render"
	"github.com/signalsfoundry/coverage-mapper/model"
)

func main() {
	sitePath := flag.String("site", "", "Path to a site scenario JSON (required)")
	band := flag.String("band", "", "Frequency band override: 2.4, 5 or 6")
	floor := flag.Int("floor", -1, "Observation floor override (-1: scenario value)")
	resolution := flag.Float64("resolution", 0, "Cell size override in meters (0: scenario value)")
	outPath := flag.String("out", "grid.json", "Output path for the computed grid JSON")
	pngPath := flag.String("png", "", "Optional output path for a rendered PNG")
	patternPath := flag.String("patterns", "", "Path to an antenna pattern library JSON (empty: isotropic)")
	materialPath := flag.String("materials", "", "Path to a material override JSON (empty: built-in table)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if *sitePath == "" {
		log.Error(ctx, "-site is required")
		flag.Usage()
		os.Exit(2)
	}

	req, err := loadScenario(*sitePath)
	if err != nil {
		log.Error(ctx, "failed to load scenario", logging.String("path", *sitePath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *band != "" {
		req.Band = model.Band(*band)
	}
	if *floor >= 0 {
		req.ActiveFloor = *floor
	}
	if *resolution > 0 {
		req.ResolutionMeters = *resolution
	}
	if err := api.ValidateRequest(req); err != nil {
		log.Error(ctx, "invalid scenario", logging.String("error", err.Error()))
		os.Exit(1)
	}

	engine, err := buildEngine(*patternPath, *materialPath)
	if err != nil {
		log.Error(ctx, "failed to configure engine", logging.String("error", err.Error()))
		os.Exit(1)
	}
	engine.Log = log

	grid, err := engine.ComputeHeatmap(ctx, req)
	if err != nil {
		log.Error(ctx, "heatmap computation failed", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if err := writeGrid(*outPath, grid); err != nil {
		log.Error(ctx, "failed to write grid", logging.String("path", *outPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info(ctx, "grid written",
		logging.String("path", *outPath),
		logging.Int("width", grid.Width),
		logging.Int("height", grid.Height),
	)

	if *pngPath != "" {
		if err := writePNG(*pngPath, grid); err != nil {
			log.Error(ctx, "failed to render PNG", logging.String("path", *pngPath), logging.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info(ctx, "PNG rendered", logging.String("path", *pngPath))
	}
}

func loadScenario(path string) (*model.HeatmapRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req model.HeatmapRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func buildEngine(patternPath, materialPath string) (*core.Engine, error) {
	var patterns core.AntennaPatternProvider
	if patternPath != "" {
		lib, err := antenna.LoadLibrary(patternPath)
		if err != nil {
			return nil, err
		}
		patterns = lib
	}

	table := materials.NewDefaultTable()
	if materialPath != "" {
		loaded, err := materials.Load(materialPath)
		if err != nil {
			return nil, err
		}
		table = loaded
	}

	return core.NewEngine(patterns, table, antenna.DefaultMountRules()), nil
}

func writeGrid(path string, grid *model.HeatmapGrid) error {
	data, err := json.MarshalIndent(grid, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writePNG(path string, grid *model.HeatmapGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.PNG(f, grid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
