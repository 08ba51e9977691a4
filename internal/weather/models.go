package weather

import "math"

// Fallback values returned when no provider could answer.
const (
	FallbackTemp        = 22
	FallbackDescription = "partly cloudy"
	FallbackIcon        = "02d"
)

// Snapshot is the current-conditions view handed to clients and embedded
// verbatim into mood entries.
type Snapshot struct {
	Temp        int    `json:"temp"`
	Description string `json:"description"`
	City        string `json:"city"`
	Icon        string `json:"icon,omitempty"`
}

// Fallback returns the fixed snapshot used when the live lookup fails.
// City echoes the requested place.
func Fallback(city string) Snapshot {
	return Snapshot{
		Temp:        FallbackTemp,
		Description: FallbackDescription,
		City:        city,
		Icon:        FallbackIcon,
	}
}

// Location identifies a place to look up. Lat/Lon are optional and only
// used by providers that work on coordinates.
type Location struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat,omitempty"`
	Lon  *float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether both coordinates are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// RoundTemp rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func RoundTemp(celsius float64) int {
	return int(math.Floor(celsius + 0.5))
}
