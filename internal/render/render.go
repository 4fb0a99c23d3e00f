// Package render rasterizes a computed heatmap grid to PNG. This is
// a flat 2D projection of the numeric grid for quick inspection, not
// a product rendering surface.
package render

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// paletteColors is the number of discrete colors sampled from the
// continuous color map.
const paletteColors = 255

// gridXYZ adapts a HeatmapGrid to gonum/plot's heatmap input. The
// grid is row-major with row 0 at the southern edge, which matches
// plot's bottom-up Y axis directly.
type gridXYZ struct {
	g *model.HeatmapGrid
}

func (d gridXYZ) Dims() (c, r int)   { return d.g.Width, d.g.Height }
func (d gridXYZ) Z(c, r int) float64 { return d.g.At(c, r) }

func (d gridXYZ) X(c int) float64 {
	return d.g.Bounds.SWLng + (d.g.Bounds.NELng-d.g.Bounds.SWLng)*(float64(c)+0.5)/float64(d.g.Width)
}

func (d gridXYZ) Y(r int) float64 {
	return d.g.Bounds.SWLat + (d.g.Bounds.NELat-d.g.Bounds.SWLat)*(float64(r)+0.5)/float64(d.g.Height)
}

// PNG writes a rendered heatmap image to w. The color scale spans
// the grid's observed dBm range, floored at the no-signal sentinel.
func PNG(w io.Writer, grid *model.HeatmapGrid) error {
	if grid == nil || len(grid.Data) == 0 {
		return fmt.Errorf("render: empty grid")
	}

	min := floats.Min(grid.Data)
	max := floats.Max(grid.Data)
	if min < model.NoSignalDbm {
		min = model.NoSignalDbm
	}
	if max <= min {
		max = min + 1 // degenerate uniform grid
	}

	colors := moreland.SmoothBlueRed()
	colors.SetMin(min)
	colors.SetMax(max)

	heat := plotter.NewHeatMap(gridXYZ{g: grid}, colors.Palette(paletteColors))
	heat.Min = min
	heat.Max = max

	p := plot.New()
	p.Title.Text = "RF coverage (dBm)"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.Add(heat)

	aspect := float64(grid.Height) / float64(grid.Width)
	width := 7 * vg.Inch
	height := vg.Length(float64(width) * aspect)
	if height < 2*vg.Inch {
		height = 2 * vg.Inch
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}
