package antenna

import (
	"strings"

	"github.com/signalsfoundry/coverage-mapper/model"
)

// MountRules resolves a device model's default physical mount type by
// longest-prefix match over its model identifier. Models with no
// matching rule default to ceiling, the usual indoor deployment.
type MountRules struct {
	rules map[string]model.MountType
}

// NewMountRules builds a resolver from a prefix to mount mapping.
func NewMountRules(rules map[string]model.MountType) *MountRules {
	copied := make(map[string]model.MountType, len(rules))
	for prefix, mount := range rules {
		copied[strings.ToUpper(prefix)] = mount
	}
	return &MountRules{rules: copied}
}

// DefaultMountRules covers the common model families: in-wall units
// mount on walls, desk units sit upright, everything else hangs from
// the ceiling.
func DefaultMountRules() *MountRules {
	return NewMountRules(map[string]model.MountType{
		"IW-":   model.MountWall,
		"WALL-": model.MountWall,
		"DESK-": model.MountDesktop,
	})
}

// DefaultMountType returns the mount for the longest rule prefix
// matching modelID, or ceiling when none matches.
func (r *MountRules) DefaultMountType(modelID string) model.MountType {
	id := strings.ToUpper(modelID)
	best := ""
	mount := model.MountCeiling
	for prefix, m := range r.rules {
		if strings.HasPrefix(id, prefix) && len(prefix) > len(best) {
			best = prefix
			mount = m
		}
	}
	return mount
}
