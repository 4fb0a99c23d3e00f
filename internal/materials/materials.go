// Package materials implements the engine's material-attenuation
// provider: a per-crossing loss table keyed by material identifier,
// plus the band to center-frequency mapping. Lookups never fail;
// unknown materials resolve to a generic interior-wall value.
package materials

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// GenericWallDb is the attenuation assumed for materials the table
// does not know about.
const GenericWallDb = 4.0

// Table is an immutable material-attenuation lookup. Build one at
// composition time and share it across requests.
type Table struct {
	attenuation map[string]float64
	frequencies map[model.Band]float64
	genericDb   float64
}

// NewDefaultTable returns a Table with the built-in coefficients.
func NewDefaultTable() *Table {
	return &Table{
		attenuation: map[string]float64{
			"drywall":  3,
			"wood":     4,
			"glass":    2,
			"brick":    8,
			"concrete": 12,
			"metal":    20,
			"wall":     GenericWallDb,
			"floor":    15,
		},
		frequencies: map[model.Band]float64{
			model.Band2G4: 2437,
			model.Band5G:  5240,
			model.Band6G:  6115,
		},
		genericDb: GenericWallDb,
	}
}

// AttenuationDb returns the per-crossing loss for a material on the
// given band. Identifiers are case-insensitive; unknown ones map to
// the generic interior-wall value.
func (t *Table) AttenuationDb(materialID string, _ model.Band) float64 {
	if db, ok := t.attenuation[strings.ToLower(materialID)]; ok {
		return db
	}
	return t.genericDb
}

// CenterFrequencyMhz maps a band to its center frequency. Unknown
// bands fall back to the 5 GHz value, keeping the path-loss formula
// defined for any input.
func (t *Table) CenterFrequencyMhz(band model.Band) float64 {
	if f, ok := t.frequencies[band]; ok {
		return f
	}
	return t.frequencies[model.Band5G]
}

// overridesJSON is the on-disk override shape. Both sections are
// optional and merge over the built-in defaults.
type overridesJSON struct {
	Materials map[string]float64 `json:"materials"`
	Bands     map[string]float64 `json:"bands"`
}

// ParseOverrides reads a JSON override document from r and returns a
// new Table with the overrides merged over t.
func (t *Table) ParseOverrides(r io.Reader) (*Table, error) {
	var payload overridesJSON
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("materials: decode overrides: %w", err)
	}

	merged := &Table{
		attenuation: make(map[string]float64, len(t.attenuation)+len(payload.Materials)),
		frequencies: make(map[model.Band]float64, len(t.frequencies)),
		genericDb:   t.genericDb,
	}
	for k, v := range t.attenuation {
		merged.attenuation[k] = v
	}
	for k, v := range payload.Materials {
		if v < 0 {
			return nil, fmt.Errorf("materials: negative attenuation %v for %q", v, k)
		}
		merged.attenuation[strings.ToLower(k)] = v
	}
	for k, v := range t.frequencies {
		merged.frequencies[k] = v
	}
	for k, v := range payload.Bands {
		band, err := model.ParseBand(k)
		if err != nil {
			return nil, fmt.Errorf("materials: %w", err)
		}
		merged.frequencies[band] = v
	}
	return merged, nil
}

// Load builds the default table with overrides from path merged in.
// An empty path returns the plain defaults.
func Load(path string) (*Table, error) {
	table := NewDefaultTable()
	if path == "" {
		return table, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("materials: open %q: %w", path, err)
	}
	defer f.Close()
	return table.ParseOverrides(f)
}
