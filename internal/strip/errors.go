package strip

import "errors"

var (
	// ErrNoStripDetected is returned when the image is empty, featureless, or
	// its only candidate region is too small to be a strip.
	ErrNoStripDetected = errors.New("no strip detected")

	// ErrNoTemplateMatch is returned only when Calibration.MaxDeltaE is set and
	// the nearest template is farther away than that ceiling.
	ErrNoTemplateMatch = errors.New("no template within distance ceiling")
)

// ErrorKind returns a stable identifier for an analysis error, suitable for
// transport payloads. Errors outside this package map to "internal".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoStripDetected):
		return "NoStripDetected"
	case errors.Is(err, ErrNoTemplateMatch):
		return "NoTemplateMatch"
	default:
		return "internal"
	}
}
