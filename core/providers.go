// core/providers.go
package core

import "github.com/signalsfoundry/coverage-mapper/model"

// AntennaPatternProvider exposes per-model radiation patterns. Gains
// are normalized to 0 dB at peak; the combined gain of a direction is
// the sum of the azimuth and elevation lookups.
//
// Implementations must be best-effort: an unknown model, band, or
// mode yields a flat 0 dB pattern rather than an error, so the hot
// path stays failure-free.
type AntennaPatternProvider interface {
	// AzimuthGainDb returns the horizontal-plane gain at the given
	// integer angle in degrees [0,360).
	AzimuthGainDb(model string, band model.Band, angleDeg int, mode string) float64

	// ElevationGainDb returns the vertical-plane gain at the given
	// integer angle in degrees [0,360).
	ElevationGainDb(model string, band model.Band, angleDeg int, mode string) float64

	// HasOmniVariant reports whether the model ships a true
	// omnidirectional pattern variant on any band.
	HasOmniVariant(model string) bool

	// OmniIsFallback reports whether an "omni" lookup for this
	// model/band silently serves the base directional pattern because
	// no omni variant exists for the band. The orientation resolver
	// uses this to pick the pattern's native mount.
	OmniIsFallback(model string, band model.Band) bool
}

// MaterialAttenuationProvider maps material identifiers to a
// per-crossing attenuation and bands to their center frequency.
// Unknown materials must resolve to a generic interior-wall value,
// never an error.
type MaterialAttenuationProvider interface {
	AttenuationDb(materialID string, band model.Band) float64
	CenterFrequencyMhz(band model.Band) float64
}

// MountTypeResolver supplies a model's default physical mount when a
// request leaves AccessPoint.MountType empty.
type MountTypeResolver interface {
	DefaultMountType(model string) model.MountType
}

// ComputeRecorder receives engine-level telemetry after each grid
// computation. A nil recorder disables instrumentation.
type ComputeRecorder interface {
	ObserveCompute(cells int, accessPoints int, seconds float64)
}

// IsotropicPatterns is an AntennaPatternProvider with a flat 0 dB
// pattern for every model. It is the engine's default when no pattern
// data is wired in, and a convenient stand-in for tests.
type IsotropicPatterns struct{}

func (IsotropicPatterns) AzimuthGainDb(string, model.Band, int, string) float64   { return 0 }
func (IsotropicPatterns) ElevationGainDb(string, model.Band, int, string) float64 { return 0 }
func (IsotropicPatterns) HasOmniVariant(string) bool                              { return false }
func (IsotropicPatterns) OmniIsFallback(string, model.Band) bool                  { return false }

// CeilingMounts is a MountTypeResolver that answers "ceiling" for
// every model, the most common deployment for indoor APs.
type CeilingMounts struct{}

func (CeilingMounts) DefaultMountType(string) model.MountType { return model.MountCeiling }
