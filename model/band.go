package model

import "fmt"

// Band identifies one of the supported radio bands. The set is closed:
// anything outside these constants is rejected at the API boundary.
type Band string

const (
	Band2G4 Band = "2.4"
	Band5G  Band = "5"
	Band6G  Band = "6"
)

// Valid reports whether b is one of the supported bands.
func (b Band) Valid() bool {
	switch b {
	case Band2G4, Band5G, Band6G:
		return true
	}
	return false
}

// ParseBand maps a band identifier string to a Band, accepting a few
// common spellings ("2.4", "2.4GHz", "5", "5GHz", ...).
func ParseBand(s string) (Band, error) {
	switch s {
	case "2.4", "2.4GHz", "2.4ghz", "2g4", "ng":
		return Band2G4, nil
	case "5", "5GHz", "5ghz", "na":
		return Band5G, nil
	case "6", "6GHz", "6ghz", "6e":
		return Band6G, nil
	}
	return "", fmt.Errorf("unknown band %q", s)
}
