package types

import "fmt"

// Intensity is the humanization intensity ladder applied during proposal
// regeneration. The order is total: off < light < medium < heavy. Within one
// generation session the ladder only ever moves up.
type Intensity int

const (
	IntensityOff Intensity = iota
	IntensityLight
	IntensityMedium
	IntensityHeavy
)

var intensityNames = map[Intensity]string{
	IntensityOff:    "off",
	IntensityLight:  "light",
	IntensityMedium: "medium",
	IntensityHeavy:  "heavy",
}

// String returns the wire/display name for the intensity.
func (i Intensity) String() string {
	if name, ok := intensityNames[i]; ok {
		return name
	}
	return fmt.Sprintf("intensity(%d)", int(i))
}

// IsValid checks if the intensity is one of the four defined rungs.
func (i Intensity) IsValid() bool {
	return i >= IntensityOff && i <= IntensityHeavy
}

// Next returns the rung above i. The second return is false when i is
// already heavy (or invalid): there is no next rung.
func (i Intensity) Next() (Intensity, bool) {
	if !i.IsValid() || i == IntensityHeavy {
		return i, false
	}
	return i + 1, true
}

// ParseIntensity converts a name back to an Intensity.
func ParseIntensity(s string) (Intensity, error) {
	for i, name := range intensityNames {
		if name == s {
			return i, nil
		}
	}
	return IntensityOff, fmt.Errorf("unknown humanization intensity: %q", s)
}
