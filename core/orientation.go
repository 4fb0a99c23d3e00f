// core/orientation.go
package core

import "github.com/signalsfoundry/coverage-mapper/model"

// patternOrientation captures how an AP's physical mount rotates its
// radiation pattern relative to the orientation the pattern was
// authored in.
type patternOrientation struct {
	// elevationOffsetDeg is added to the raw elevation angle before
	// the pattern lookup.
	elevationOffsetDeg int

	// swapAxes is set for wall mounts: the azimuth and elevation
	// planes are physically rotated 90 degrees, so horizontal
	// directionality is read from the pattern's elevation table and
	// vertical directionality from the azimuth table.
	swapAxes bool
}

// mountOffsetDeg is the elevation rotation a mount applies relative
// to a ceiling-flat install.
func mountOffsetDeg(m model.MountType) int {
	switch m {
	case model.MountWall:
		return -90
	case model.MountDesktop:
		return 180
	default:
		return 0
	}
}

// nativeMount determines the mount a pattern was authored for.
// Directional patterns are authored ceiling-flat; true omni variants
// are authored wall-mounted. When the provider reports that the omni
// request fell back to the base directional pattern for this band,
// the native mount is ceiling, not wall.
func nativeMount(p AntennaPatternProvider, ap *model.AccessPoint, band model.Band) model.MountType {
	if ap.AntennaMode == model.AntennaModeOmni &&
		p.HasOmniVariant(ap.Model) &&
		!p.OmniIsFallback(ap.Model, band) {
		return model.MountWall
	}
	return model.MountCeiling
}

// resolveOrientation computes the mount-offset correction and axis
// swap for one AP. mount must already be resolved to a concrete
// MountType (never empty).
func resolveOrientation(p AntennaPatternProvider, ap *model.AccessPoint, mount model.MountType, band model.Band) patternOrientation {
	native := nativeMount(p, ap, band)
	return patternOrientation{
		elevationOffsetDeg: mountOffsetDeg(mount) - mountOffsetDeg(native),
		swapAxes:           mount == model.MountWall,
	}
}

// adjustElevation applies the mount offset to a raw elevation angle,
// wrapping on the pattern table's 0..358 degree domain.
func (o patternOrientation) adjustElevation(rawDeg int) int {
	return ((rawDeg+o.elevationOffsetDeg)%359 + 359) % 359
}
