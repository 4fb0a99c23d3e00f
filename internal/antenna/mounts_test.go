package antenna

import (
	"testing"

	"github.com/signalsfoundry/coverage-mapper/model"
)

func TestDefaultMountRules(t *testing.T) {
	rules := DefaultMountRules()

	cases := []struct {
		model string
		want  model.MountType
	}{
		{"IW-HD", model.MountWall},
		{"iw-6", model.MountWall}, // case-insensitive
		{"DESK-MINI", model.MountDesktop},
		{"AP-PRO", model.MountCeiling},
		{"", model.MountCeiling},
	}
	for _, tc := range cases {
		if got := rules.DefaultMountType(tc.model); got != tc.want {
			t.Errorf("DefaultMountType(%q) = %q, want %q", tc.model, got, tc.want)
		}
	}
}

func TestLongestPrefixWins(t *testing.T) {
	rules := NewMountRules(map[string]model.MountType{
		"AP":      model.MountCeiling,
		"AP-WALL": model.MountWall,
	})

	if got := rules.DefaultMountType("AP-WALL-6E"); got != model.MountWall {
		t.Errorf("DefaultMountType(AP-WALL-6E) = %q, want wall", got)
	}
	if got := rules.DefaultMountType("AP-PRO"); got != model.MountCeiling {
		t.Errorf("DefaultMountType(AP-PRO) = %q, want ceiling", got)
	}
}
