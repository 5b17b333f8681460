package strip

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestAnalyzer_Classify_NegativeStrip(t *testing.T) {
	a := newTestAnalyzer(t)
	cal := GlucoseCalibration()

	img := createStripPhoto(300, 600, image.Rect(100, 50, 160, 550), templateRGB(t, cal, LabelNegative))

	label, err := a.Classify(img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != LabelNegative {
		t.Errorf("label: got %q, want %q", label, LabelNegative)
	}
}

func TestAnalyzer_Classify_EveryTemplate(t *testing.T) {
	a := newTestAnalyzer(t)
	cal := GlucoseCalibration()

	for _, tpl := range cal.Templates {
		t.Run(tpl.Label, func(t *testing.T) {
			img := createStripPhoto(240, 720, image.Rect(80, 60, 150, 660), templateRGB(t, cal, tpl.Label))

			res, err := a.Analyze(img)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			if res.Match.Label != tpl.Label {
				t.Errorf("label: got %q (ΔE %.2f), want %q", res.Match.Label, res.Match.Distance, tpl.Label)
			}
			if res.Match.Distance > 3 {
				t.Errorf("ΔE to own template too large: %.2f", res.Match.Distance)
			}
		})
	}
}

func TestAnalyzer_Analyze_Determinism(t *testing.T) {
	a := newTestAnalyzer(t)
	cal := GlucoseCalibration()
	img := createStripPhoto(300, 600, image.Rect(100, 50, 160, 550), templateRGB(t, cal, LabelTwoPlus))

	first, err := a.Analyze(img)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := a.Analyze(img)
		if err != nil {
			t.Fatalf("Analyze run %d failed: %v", i, err)
		}
		if again.Box != first.Box {
			t.Errorf("run %d box: got %+v, want %+v", i, again.Box, first.Box)
		}
		if again.Sample.Lab != first.Sample.Lab {
			t.Errorf("run %d sample: got %+v, want %+v", i, again.Sample.Lab, first.Sample.Lab)
		}
		if again.Match != first.Match {
			t.Errorf("run %d match: got %+v, want %+v", i, again.Match, first.Match)
		}
	}
}

func TestAnalyzer_Analyze_CanonicalSize(t *testing.T) {
	a := newTestAnalyzer(t)
	cal := GlucoseCalibration()
	pad := templateRGB(t, cal, LabelOnePlus)

	tests := []struct {
		name          string
		width, height int
		strip         image.Rectangle
	}{
		{"small portrait", 120, 300, image.Rect(40, 20, 70, 280)},
		{"large portrait", 900, 1600, image.Rect(300, 100, 480, 1500)},
		{"square photo", 500, 500, image.Rect(220, 30, 260, 470)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createStripPhoto(tt.width, tt.height, tt.strip, pad)
			res, err := a.Analyze(img)
			if err != nil {
				t.Fatalf("Analyze failed: %v", err)
			}
			b := res.Canonical.Bounds()
			if b.Dx() != cal.CanonicalWidth || b.Dy() != cal.CanonicalHeight {
				t.Errorf("canonical size: got %dx%d, want %dx%d",
					b.Dx(), b.Dy(), cal.CanonicalWidth, cal.CanonicalHeight)
			}
			pb := res.Pad.Bounds()
			if pb.Dx() != cal.Pad.X2-cal.Pad.X1 || pb.Dy() != cal.Pad.Y2-cal.Pad.Y1 {
				t.Errorf("pad size: got %dx%d", pb.Dx(), pb.Dy())
			}
		})
	}
}

func TestAnalyzer_Analyze_RotatedStrip(t *testing.T) {
	a := newTestAnalyzer(t)
	cal := GlucoseCalibration()
	upright := createStripPhoto(300, 600, image.Rect(100, 50, 160, 550), templateRGB(t, cal, LabelThreePlus))
	// A counter-clockwise quarter turn is undone by the clockwise turn in Normalize.
	sideways := imaging.Rotate90(upright)

	want, err := a.Analyze(upright)
	if err != nil {
		t.Fatalf("Analyze upright failed: %v", err)
	}
	got, err := a.Analyze(sideways)
	if err != nil {
		t.Fatalf("Analyze sideways failed: %v", err)
	}

	if !got.Rotated || want.Rotated {
		t.Errorf("Rotated: upright=%v sideways=%v", want.Rotated, got.Rotated)
	}
	if got.Match.Label != want.Match.Label {
		t.Errorf("label: got %q, want %q", got.Match.Label, want.Match.Label)
	}
	if d := DeltaE2000(got.Sample.Lab, want.Sample.Lab); d > 1 {
		t.Errorf("pad colors differ by ΔE %.2f", d)
	}

	var total, n int
	wb := want.Canonical.Bounds()
	for y := wb.Min.Y; y < wb.Max.Y; y++ {
		for x := wb.Min.X; x < wb.Max.X; x++ {
			w := want.Canonical.NRGBAAt(x, y)
			g := got.Canonical.NRGBAAt(x, y)
			total += abs(int(w.R)-int(g.R)) + abs(int(w.G)-int(g.G)) + abs(int(w.B)-int(g.B))
			n += 3
		}
	}
	if mean := float64(total) / float64(n); mean > 8 {
		t.Errorf("canonical strips differ: mean abs difference %.2f", mean)
	}
}

func TestAnalyzer_Analyze_FeaturelessImage(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil image", nil},
		{"typed nil", (*image.RGBA)(nil)},
		{"typed nil paletted", (*image.Paletted)(nil)},
		{"zero size", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"solid light", createUniformImage(200, 300, tableColor)},
		{"solid dark", createUniformImage(200, 300, stripColor)},
		{"solid black", createUniformImage(50, 50, color.RGBA{0, 0, 0, 255})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Classify(tt.img)
			if !errors.Is(err, ErrNoStripDetected) {
				t.Errorf("got %v, want ErrNoStripDetected", err)
			}
		})
	}
}

func TestAnalyzer_Analyze_DegenerateRegion(t *testing.T) {
	a := newTestAnalyzer(t)
	img := createUniformImage(200, 200, tableColor)
	fillRect(img, image.Rect(100, 100, 102, 102), stripColor)

	_, err := a.Analyze(img)
	if !errors.Is(err, ErrNoStripDetected) {
		t.Errorf("got %v, want ErrNoStripDetected for a 2x2 region", err)
	}
}

func TestAnalyzer_Analyze_MaxDeltaE(t *testing.T) {
	cal := GlucoseCalibration()
	cal.MaxDeltaE = 5
	a, err := NewAnalyzer(cal)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	// Saturated blue is nowhere near any glucose template.
	img := createStripPhoto(300, 600, image.Rect(100, 50, 160, 550), color.RGBA{20, 40, 220, 255})

	res, err := a.Analyze(img)
	if !errors.Is(err, ErrNoTemplateMatch) {
		t.Fatalf("got %v, want ErrNoTemplateMatch", err)
	}
	if res == nil || len(res.Distances) != len(cal.Templates) {
		t.Errorf("analysis should still carry every distance, got %+v", res)
	}
}

func TestNewAnalyzer_InvalidCalibration(t *testing.T) {
	cal := GlucoseCalibration()
	cal.Templates = nil
	if _, err := NewAnalyzer(cal); err == nil {
		t.Error("NewAnalyzer should reject a calibration without templates")
	}
}

func TestNewAnalyzer_CopiesCalibration(t *testing.T) {
	cal := GlucoseCalibration()
	a, err := NewAnalyzer(cal)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	cal.Templates[0].Label = "mutated"

	if got := a.Calibration().Templates[0].Label; got != LabelNegative {
		t.Errorf("analyzer template changed with caller's copy: %q", got)
	}
}

type fixedLocator struct {
	box BoundingBox
	err error
}

func (f fixedLocator) Locate(image.Image) (BoundingBox, error) {
	return f.box, f.err
}

func TestAnalyzer_WithLocator(t *testing.T) {
	cal := GlucoseCalibration()
	img := createStripPhoto(300, 600, image.Rect(100, 50, 160, 550), templateRGB(t, cal, LabelFourPlus))

	a, err := NewAnalyzer(cal, WithLocator(fixedLocator{box: BoundingBox{X: 100, Y: 50, Width: 60, Height: 500}}))
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	label, err := a.Classify(img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if label != LabelFourPlus {
		t.Errorf("label: got %q, want %q", label, LabelFourPlus)
	}

	a, _ = NewAnalyzer(cal, WithLocator(fixedLocator{err: ErrNoStripDetected}))
	if _, err := a.Classify(img); !errors.Is(err, ErrNoStripDetected) {
		t.Errorf("locator error not propagated: %v", err)
	}
}
