package strip

import (
	"fmt"
	"image"

	"github.com/ironsheep/strip-reader-mcp/internal/logger"
)

// Analysis is the full trace of one pipeline run.
type Analysis struct {
	Calibration string      `json:"calibration"`
	Box         BoundingBox `json:"bounding_box"`
	Rotated     bool        `json:"rotated"`
	Sample      ColorSample `json:"sample"`
	Match       Match       `json:"match"`
	Distances   []Match     `json:"distances"`

	// Canonical is the normalized strip and Pad the crop that was sampled.
	Canonical *image.NRGBA `json:"-"`
	Pad       *image.NRGBA `json:"-"`
}

// Analyzer runs the classification pipeline for one calibration profile.
type Analyzer struct {
	cal        Calibration
	locator    Locator
	classifier *Classifier
	log        logger.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLocator replaces the default Otsu locator.
func WithLocator(l Locator) Option {
	return func(a *Analyzer) {
		a.locator = l
	}
}

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		a.log = l
	}
}

// NewAnalyzer validates cal and returns an analyzer for it. The profile is
// copied, so the caller may reuse cal freely.
func NewAnalyzer(cal Calibration, opts ...Option) (*Analyzer, error) {
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration %q: %w", cal.Name, err)
	}
	cal.Templates = append([]Template(nil), cal.Templates...)

	a := &Analyzer{
		cal:        cal,
		locator:    NewOtsuLocator(),
		classifier: NewClassifier(cal),
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Calibration returns a copy of the analyzer's profile.
func (a *Analyzer) Calibration() Calibration {
	cal := a.cal
	cal.Templates = append([]Template(nil), a.cal.Templates...)
	return cal
}

// Classify returns the label of the template nearest to the strip's pad
// color. It is the analyzer's single entry point for callers that only need
// the label.
func (a *Analyzer) Classify(img image.Image) (string, error) {
	res, err := a.Analyze(img)
	if err != nil {
		return "", err
	}
	return res.Match.Label, nil
}

// Locate runs only the localization stage.
func (a *Analyzer) Locate(img image.Image) (BoundingBox, error) {
	return a.locator.Locate(img)
}

// Analyze runs every stage and returns the intermediate results along with
// the match. On ErrNoTemplateMatch the returned Analysis is still populated.
func (a *Analyzer) Analyze(img image.Image) (*Analysis, error) {
	box, err := a.locator.Locate(img)
	if err != nil {
		return nil, err
	}
	a.log.Debug("strip", "located strip", map[string]interface{}{
		"x": box.X, "y": box.Y, "width": box.Width, "height": box.Height,
	})

	canonical, err := Normalize(img, box, a.cal)
	if err != nil {
		return nil, err
	}
	pad := ExtractPad(canonical, a.cal)
	sample := SampleColor(pad)

	distances := a.classifier.Distances(sample.Lab)
	match, err := a.classifier.nearest(distances)

	res := &Analysis{
		Calibration: a.cal.Name,
		Box:         box,
		Rotated:     box.Width > box.Height,
		Sample:      sample,
		Match:       match,
		Distances:   distances,
		Canonical:   canonical,
		Pad:         pad,
	}
	a.log.Debug("strip", "classified pad", map[string]interface{}{
		"hex": sample.Hex, "label": match.Label, "delta_e": match.Distance,
	})
	return res, err
}
