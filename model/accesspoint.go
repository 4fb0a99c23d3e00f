package model

// MountType describes the physical orientation of an access point:
// flat on a ceiling, vertical on a wall, or upright on a desk. The
// mount rotates the device's radiation pattern in space.
type MountType string

const (
	MountCeiling MountType = "ceiling"
	MountWall    MountType = "wall"
	MountDesktop MountType = "desktop"
)

// AntennaModeOmni selects the omnidirectional pattern variant of a
// model where one exists; any other value (including empty) selects
// the base directional pattern.
const AntennaModeOmni = "omni"

// AccessPoint is one transmitter considered by the heatmap engine.
// Instances are caller-owned, request-scoped, and never mutated by
// the engine.
type AccessPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Floor is the integer floor index the AP is installed on.
	Floor int `json:"floor"`

	TxPowerDbm     float64 `json:"txPowerDbm"`
	AntennaGainDbi float64 `json:"antennaGainDbi"`

	// Model keys the antenna radiation pattern lookup.
	Model string `json:"model"`

	// AntennaMode optionally selects a pattern variant, e.g. "omni".
	AntennaMode string `json:"antennaMode,omitempty"`

	// MountType may be left empty, in which case the engine asks the
	// MountTypeResolver for the model's default.
	MountType MountType `json:"mountType,omitempty"`

	// OrientationDeg is the AP's forward-facing azimuth reference in
	// compass degrees [0,360).
	OrientationDeg float64 `json:"orientationDeg"`
}

// Position returns the AP location as a LatLng.
func (ap *AccessPoint) Position() LatLng {
	return LatLng{Lat: ap.Latitude, Lng: ap.Longitude}
}
