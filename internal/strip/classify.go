package strip

import "fmt"

// Match pairs a template label with its ΔE2000 distance from a sample.
type Match struct {
	Label    string  `json:"label"`
	Distance float64 `json:"delta_e"`
}

// Classifier names the template nearest to a sample color.
type Classifier struct {
	templates []Template
	maxDeltaE float64
}

// NewClassifier copies the template table out of cal; later changes to cal
// do not affect the classifier.
func NewClassifier(cal Calibration) *Classifier {
	templates := make([]Template, len(cal.Templates))
	copy(templates, cal.Templates)
	return &Classifier{templates: templates, maxDeltaE: cal.MaxDeltaE}
}

// Distances returns the ΔE2000 distance from sample to every template, in
// table order.
func (c *Classifier) Distances(sample LabColor) []Match {
	out := make([]Match, len(c.templates))
	for i, t := range c.templates {
		out[i] = Match{Label: t.Label, Distance: DeltaE2000(sample, t.Lab)}
	}
	return out
}

// Classify returns the nearest template. When two templates are equally
// near, the one earlier in the table wins; callers should not rely on that
// order.
//
// ErrNoTemplateMatch is returned only when the calibration sets MaxDeltaE
// and the nearest template is farther away than it.
func (c *Classifier) Classify(sample LabColor) (Match, error) {
	return c.nearest(c.Distances(sample))
}

func (c *Classifier) nearest(distances []Match) (Match, error) {
	if len(distances) == 0 {
		return Match{}, fmt.Errorf("empty template table: %w", ErrNoTemplateMatch)
	}
	best := distances[0]
	for _, m := range distances[1:] {
		if m.Distance < best.Distance {
			best = m
		}
	}
	if c.maxDeltaE > 0 && best.Distance > c.maxDeltaE {
		return best, fmt.Errorf("nearest template %q at ΔE %.2f exceeds %.2f: %w",
			best.Label, best.Distance, c.maxDeltaE, ErrNoTemplateMatch)
	}
	return best, nil
}
