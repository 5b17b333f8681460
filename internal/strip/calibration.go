package strip

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// Labels of the reference glucose template table, in increasing concentration.
const (
	LabelNegative  = "Negative"
	LabelTrace     = "Trace (5 mmol/l)"
	LabelOnePlus   = "1+ (15)"
	LabelTwoPlus   = "2+ (30)"
	LabelThreePlus = "3+ (60)"
	LabelFourPlus  = "4+ (110)"
)

// LabColor is a CIE-Lab triple on the conventional scale: L in [0,100],
// a and b roughly in [-128,127].
type LabColor struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// toColorful converts the triple to a go-colorful color. The result may lie
// outside the sRGB gamut; go-colorful keeps unclamped components, so the
// conversion back to Lab is lossless.
func (c LabColor) toColorful() colorful.Color {
	return colorful.Lab(c.L/100, c.A/100, c.B/100)
}

// DeltaE2000 returns the CIE ΔE2000 difference between two Lab colors on the
// conventional 0-100 scale.
func DeltaE2000(x, y LabColor) float64 {
	return x.toColorful().DistanceCIEDE2000(y.toColorful()) * 100
}

// Template is one calibrated reference color.
type Template struct {
	Label string   `json:"label"`
	Lab   LabColor `json:"lab"`
}

// Region is a rectangle in canonical-frame pixels. (X1,Y1) is inclusive,
// (X2,Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Calibration describes one physical strip product: the canonical frame every
// located strip is resampled to, where the glucose pad sits in that frame,
// and the reference colors the pad is compared against.
type Calibration struct {
	Name            string `json:"name"`
	CanonicalWidth  int    `json:"canonical_width"`
	CanonicalHeight int    `json:"canonical_height"`
	Pad             Region `json:"pad"`

	// MinStripSize is the smallest bounding-box side, in source pixels, that
	// is accepted as a strip.
	MinStripSize int `json:"min_strip_size"`

	// MaxDeltaE, when positive, rejects samples whose nearest template is
	// farther away. Zero always names the nearest template.
	MaxDeltaE float64 `json:"max_delta_e,omitempty"`

	Templates []Template `json:"templates"`
}

// GlucoseCalibration returns the reference glucose-strip profile. Every call
// returns a fresh copy.
func GlucoseCalibration() Calibration {
	return Calibration{
		Name:            "glucose-reference",
		CanonicalWidth:  120,
		CanonicalHeight: 1400,
		Pad:             Region{X1: 25, Y1: 910, X2: 95, Y2: 1000},
		MinStripSize:    8,
		Templates: []Template{
			{Label: LabelNegative, Lab: LabColor{L: 82, A: -18, B: 12}},
			{Label: LabelTrace, Lab: LabColor{L: 78, A: -22, B: 18}},
			{Label: LabelOnePlus, Lab: LabColor{L: 62, A: -10, B: 45}},
			{Label: LabelTwoPlus, Lab: LabColor{L: 54, A: -2, B: 52}},
			{Label: LabelThreePlus, Lab: LabColor{L: 44, A: 6, B: 42}},
			{Label: LabelFourPlus, Lab: LabColor{L: 32, A: 12, B: 28}},
		},
	}
}

// ParseCalibration decodes a JSON profile. Fields the document omits keep
// the reference profile's values; a templates array replaces the table.
func ParseCalibration(r io.Reader) (Calibration, error) {
	cal := GlucoseCalibration()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cal); err != nil {
		return Calibration{}, fmt.Errorf("failed to decode calibration: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, err
	}
	return cal, nil
}

// LoadCalibration reads and validates a JSON profile from disk.
func LoadCalibration(path string) (Calibration, error) {
	f, err := os.Open(path)
	if err != nil {
		return Calibration{}, fmt.Errorf("failed to open calibration: %w", err)
	}
	defer f.Close()

	cal, err := ParseCalibration(f)
	if err != nil {
		return Calibration{}, fmt.Errorf("%s: %w", path, err)
	}
	return cal, nil
}

// Validate checks that the profile can drive the pipeline: the pad lies
// inside the canonical frame and the template table is usable.
func (c Calibration) Validate() error {
	if c.CanonicalWidth <= 0 || c.CanonicalHeight <= 0 {
		return fmt.Errorf("invalid canonical size %dx%d", c.CanonicalWidth, c.CanonicalHeight)
	}
	pad := c.Pad.Rect()
	if pad.Empty() {
		return fmt.Errorf("invalid pad region (%d,%d)-(%d,%d)", c.Pad.X1, c.Pad.Y1, c.Pad.X2, c.Pad.Y2)
	}
	if !pad.In(image.Rect(0, 0, c.CanonicalWidth, c.CanonicalHeight)) {
		return fmt.Errorf("pad region (%d,%d)-(%d,%d) outside canonical frame %dx%d",
			c.Pad.X1, c.Pad.Y1, c.Pad.X2, c.Pad.Y2, c.CanonicalWidth, c.CanonicalHeight)
	}
	if c.MinStripSize < 1 {
		return fmt.Errorf("min_strip_size must be at least 1, got %d", c.MinStripSize)
	}
	if c.MaxDeltaE < 0 || math.IsNaN(c.MaxDeltaE) {
		return fmt.Errorf("max_delta_e must be >= 0, got %v", c.MaxDeltaE)
	}
	if len(c.Templates) == 0 {
		return fmt.Errorf("calibration %q has no templates", c.Name)
	}

	seen := make(map[string]bool, len(c.Templates))
	for i, t := range c.Templates {
		if t.Label == "" {
			return fmt.Errorf("template %d has an empty label", i)
		}
		if seen[t.Label] {
			return fmt.Errorf("duplicate template label %q", t.Label)
		}
		seen[t.Label] = true
		for _, v := range []float64{t.Lab.L, t.Lab.A, t.Lab.B} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("template %q has a non-finite Lab component", t.Label)
			}
		}
	}
	return nil
}

// SeparationMatrix returns the pairwise ΔE2000 distances of the template
// table, indexed in table order. It returns nil for an empty table.
func (c Calibration) SeparationMatrix() *mat.SymDense {
	n := len(c.Templates)
	if n == 0 {
		return nil
	}
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, DeltaE2000(c.Templates[i].Lab, c.Templates[j].Lab))
		}
	}
	return m
}

// ClosestPair reports the two templates that are hardest to tell apart.
// It returns ok=false for tables with fewer than two entries.
func (c Calibration) ClosestPair() (a, b string, distance float64, ok bool) {
	n := len(c.Templates)
	if n < 2 {
		return "", "", 0, false
	}
	m := c.SeparationMatrix()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := m.At(i, j)
			if !ok || d < distance {
				a, b, distance, ok = c.Templates[i].Label, c.Templates[j].Label, d, true
			}
		}
	}
	return a, b, distance, ok
}
