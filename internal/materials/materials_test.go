package materials

import (
	"strings"
	"testing"

	"github.com/signalsfoundry/coverage-mapper/model"
)

func TestDefaultTableKnownMaterials(t *testing.T) {
	table := NewDefaultTable()

	if got := table.AttenuationDb("concrete", model.Band5G); got != 12 {
		t.Errorf("concrete = %v, want 12", got)
	}
	if got := table.AttenuationDb("Drywall", model.Band2G4); got != 3 {
		t.Errorf("case-insensitive drywall = %v, want 3", got)
	}
}

func TestUnknownMaterialFallsBackToGenericWall(t *testing.T) {
	table := NewDefaultTable()

	if got := table.AttenuationDb("unobtanium", model.Band5G); got != GenericWallDb {
		t.Errorf("unknown material = %v, want generic %v", got, GenericWallDb)
	}
}

func TestCenterFrequencies(t *testing.T) {
	table := NewDefaultTable()

	cases := []struct {
		band model.Band
		want float64
	}{
		{model.Band2G4, 2437},
		{model.Band5G, 5240},
		{model.Band6G, 6115},
		{model.Band("99"), 5240}, // unknown band falls back to 5 GHz
	}
	for _, tc := range cases {
		if got := table.CenterFrequencyMhz(tc.band); got != tc.want {
			t.Errorf("CenterFrequencyMhz(%q) = %v, want %v", tc.band, got, tc.want)
		}
	}
}

func TestParseOverridesMergesOverDefaults(t *testing.T) {
	table := NewDefaultTable()

	merged, err := table.ParseOverrides(strings.NewReader(`{
		"materials": {"Concrete": 14.5, "rammed_earth": 18},
		"bands": {"6": 6425}
	}`))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}

	if got := merged.AttenuationDb("concrete", model.Band5G); got != 14.5 {
		t.Errorf("overridden concrete = %v, want 14.5", got)
	}
	if got := merged.AttenuationDb("rammed_earth", model.Band5G); got != 18 {
		t.Errorf("new material = %v, want 18", got)
	}
	if got := merged.AttenuationDb("drywall", model.Band5G); got != 3 {
		t.Errorf("untouched default = %v, want 3", got)
	}
	if got := merged.CenterFrequencyMhz(model.Band6G); got != 6425 {
		t.Errorf("overridden 6 GHz frequency = %v, want 6425", got)
	}

	// The original table must be unchanged.
	if got := table.AttenuationDb("concrete", model.Band5G); got != 12 {
		t.Errorf("original table mutated: concrete = %v, want 12", got)
	}
}

func TestParseOverridesRejectsBadInput(t *testing.T) {
	table := NewDefaultTable()

	if _, err := table.ParseOverrides(strings.NewReader(`{"materials": {"x": -1}}`)); err == nil {
		t.Error("expected error for negative attenuation")
	}
	if _, err := table.ParseOverrides(strings.NewReader(`{"bands": {"marine-vhf": 156}}`)); err == nil {
		t.Error("expected error for unknown band")
	}
	if _, err := table.ParseOverrides(strings.NewReader(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
