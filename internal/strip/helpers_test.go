package strip

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	tableColor = color.RGBA{230, 230, 230, 255}
	stripColor = color.RGBA{40, 40, 40, 255}
)

// fillRect paints r on img.
func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// createUniformImage creates a single-color image.
func createUniformImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), c)
	return img
}

// templateRGB returns the 8-bit sRGB color closest to a template.
func templateRGB(t *testing.T, cal Calibration, label string) color.RGBA {
	t.Helper()
	for _, tpl := range cal.Templates {
		if tpl.Label == label {
			r, g, b := colorful.Lab(tpl.Lab.L/100, tpl.Lab.A/100, tpl.Lab.B/100).Clamped().RGB255()
			return color.RGBA{r, g, b, 255}
		}
	}
	t.Fatalf("no template %q", label)
	return color.RGBA{}
}

// createStripPhoto draws a dark vertical strip on a light table. The strip
// occupies stripRect, and a patch covering the calibrated pad position (with
// a generous margin) is painted padColor.
func createStripPhoto(width, height int, stripRect image.Rectangle, padColor color.Color) *image.RGBA {
	img := createUniformImage(width, height, tableColor)
	fillRect(img, stripRect, stripColor)

	cal := GlucoseCalibration()
	sw, sh := float64(stripRect.Dx()), float64(stripRect.Dy())
	fx1 := float64(cal.Pad.X1) / float64(cal.CanonicalWidth)
	fx2 := float64(cal.Pad.X2) / float64(cal.CanonicalWidth)
	fy1 := float64(cal.Pad.Y1) / float64(cal.CanonicalHeight)
	fy2 := float64(cal.Pad.Y2) / float64(cal.CanonicalHeight)

	pad := image.Rect(
		stripRect.Min.X+int((fx1-0.06)*sw),
		stripRect.Min.Y+int((fy1-0.04)*sh),
		stripRect.Min.X+int((fx2+0.06)*sw),
		stripRect.Min.Y+int((fy2+0.04)*sh),
	)
	fillRect(img, pad, padColor)
	return img
}

// newTestAnalyzer returns an analyzer on the reference calibration.
func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(GlucoseCalibration())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
