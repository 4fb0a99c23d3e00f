// Package antenna implements the file-backed antenna pattern
// provider and the model to mount-type resolver.
//
// Pattern files describe per-model, per-band azimuth and elevation
// gain tables, optionally with a separate "omni" variant. Tables are
// normalized on load so the peak gain is 0 dB; lookups interpolate
// linearly between anchor points and never fail, degrading to a flat
// 0 dB pattern for anything the library does not know.
package antenna

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// gainTable holds gain anchor points evenly spaced over 360 degrees.
type gainTable []float64

// gainAt interpolates the table at an integer angle, wrapping around
// the circle. An empty table is flat 0 dB.
func (g gainTable) gainAt(angleDeg int) float64 {
	if len(g) == 0 {
		return 0
	}
	a := ((angleDeg % 360) + 360) % 360
	pos := float64(a) / 360 * float64(len(g))
	i := int(pos)
	frac := pos - float64(i)
	i %= len(g)
	j := (i + 1) % len(g)
	return g[i]*(1-frac) + g[j]*frac
}

// normalize shifts the table so its maximum is 0 dB.
func (g gainTable) normalize() {
	if len(g) == 0 {
		return
	}
	peak := g[0]
	for _, v := range g[1:] {
		if v > peak {
			peak = v
		}
	}
	for i := range g {
		g[i] -= peak
	}
}

// bandPattern is one pattern variant for one band.
type bandPattern struct {
	azimuth   gainTable
	elevation gainTable
}

// modelPatterns groups the base (directional) and omni variants of
// one device model across bands.
type modelPatterns struct {
	base map[model.Band]*bandPattern
	omni map[model.Band]*bandPattern
}

// Library is an immutable pattern lookup satisfying the engine's
// AntennaPatternProvider interface.
type Library struct {
	models map[string]*modelPatterns
}

// NewLibrary returns an empty library: every lookup is flat 0 dB.
func NewLibrary() *Library {
	return &Library{models: map[string]*modelPatterns{}}
}

// lookup resolves the pattern for a model/band/mode, applying the
// omni-to-base fallback. Returns nil when nothing matches.
func (l *Library) lookup(modelID string, band model.Band, mode string) *bandPattern {
	mp := l.models[modelID]
	if mp == nil {
		return nil
	}
	if mode == model.AntennaModeOmni {
		if p := mp.omni[band]; p != nil {
			return p
		}
	}
	return mp.base[band]
}

// AzimuthGainDb returns the horizontal-plane gain at angleDeg.
func (l *Library) AzimuthGainDb(modelID string, band model.Band, angleDeg int, mode string) float64 {
	if p := l.lookup(modelID, band, mode); p != nil {
		return p.azimuth.gainAt(angleDeg)
	}
	return 0
}

// ElevationGainDb returns the vertical-plane gain at angleDeg.
func (l *Library) ElevationGainDb(modelID string, band model.Band, angleDeg int, mode string) float64 {
	if p := l.lookup(modelID, band, mode); p != nil {
		return p.elevation.gainAt(angleDeg)
	}
	return 0
}

// HasOmniVariant reports whether the model ships an omni pattern on
// any band.
func (l *Library) HasOmniVariant(modelID string) bool {
	mp := l.models[modelID]
	return mp != nil && len(mp.omni) > 0
}

// OmniIsFallback reports whether an omni lookup for this model/band
// serves the base directional tables because no omni variant exists
// for the band.
func (l *Library) OmniIsFallback(modelID string, band model.Band) bool {
	mp := l.models[modelID]
	if mp == nil {
		return true
	}
	return mp.omni[band] == nil
}

// Models lists the model identifiers in the library, sorted. Used
// for startup diagnostics.
func (l *Library) Models() []string {
	out := make([]string, 0, len(l.models))
	for id := range l.models {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ---- loading ----

type variantJSON struct {
	Azimuth   []float64 `json:"azimuth"`
	Elevation []float64 `json:"elevation"`
}

type bandJSON struct {
	Azimuth   []float64    `json:"azimuth"`
	Elevation []float64    `json:"elevation"`
	Omni      *variantJSON `json:"omni,omitempty"`
}

type modelJSON struct {
	Bands map[string]bandJSON `json:"bands"`
}

type libraryJSON struct {
	Models map[string]modelJSON `json:"models"`
}

// ParseLibrary reads a pattern document from r.
func ParseLibrary(r io.Reader) (*Library, error) {
	var payload libraryJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("antenna: decode pattern library: %w", err)
	}

	lib := NewLibrary()
	for modelID, mj := range payload.Models {
		if modelID == "" {
			return nil, fmt.Errorf("antenna: model with empty id")
		}
		mp := &modelPatterns{
			base: map[model.Band]*bandPattern{},
			omni: map[model.Band]*bandPattern{},
		}
		for rawBand, bj := range mj.Bands {
			band, err := model.ParseBand(rawBand)
			if err != nil {
				return nil, fmt.Errorf("antenna: model %q: %w", modelID, err)
			}
			mp.base[band] = newBandPattern(bj.Azimuth, bj.Elevation)
			if bj.Omni != nil {
				mp.omni[band] = newBandPattern(bj.Omni.Azimuth, bj.Omni.Elevation)
			}
		}
		lib.models[modelID] = mp
	}
	return lib, nil
}

// LoadLibrary parses the pattern file at path. An empty path yields
// an empty library.
func LoadLibrary(path string) (*Library, error) {
	if path == "" {
		return NewLibrary(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("antenna: open %q: %w", path, err)
	}
	defer f.Close()
	return ParseLibrary(f)
}

func newBandPattern(azimuth, elevation []float64) *bandPattern {
	p := &bandPattern{
		azimuth:   append(gainTable(nil), azimuth...),
		elevation: append(gainTable(nil), elevation...),
	}
	p.azimuth.normalize()
	p.elevation.normalize()
	return p
}
