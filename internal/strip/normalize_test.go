package strip

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNormalize_Portrait(t *testing.T) {
	cal := GlucoseCalibration()
	img := createUniformImage(100, 100, tableColor)
	// Top half red, bottom half blue inside the box.
	fillRect(img, image.Rect(10, 10, 30, 50), color.RGBA{255, 0, 0, 255})
	fillRect(img, image.Rect(10, 50, 30, 90), color.RGBA{0, 0, 255, 255})

	out, err := Normalize(img, BoundingBox{X: 10, Y: 10, Width: 20, Height: 80}, cal)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 120 || b.Dy() != 1400 {
		t.Fatalf("size: got %dx%d, want 120x1400", b.Dx(), b.Dy())
	}
	if c := out.NRGBAAt(60, 100); c.R < 200 || c.B > 50 {
		t.Errorf("top should stay red, got %v", c)
	}
	if c := out.NRGBAAt(60, 1300); c.B < 200 || c.R > 50 {
		t.Errorf("bottom should stay blue, got %v", c)
	}
}

func TestNormalize_LandscapeRotatesClockwise(t *testing.T) {
	cal := GlucoseCalibration()
	img := createUniformImage(100, 40, tableColor)
	// Left half red, right half blue. A clockwise quarter turn puts the
	// left edge on top.
	fillRect(img, image.Rect(0, 0, 50, 40), color.RGBA{255, 0, 0, 255})
	fillRect(img, image.Rect(50, 0, 100, 40), color.RGBA{0, 0, 255, 255})

	out, err := Normalize(img, BoundingBox{X: 0, Y: 0, Width: 100, Height: 40}, cal)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 120 || b.Dy() != 1400 {
		t.Fatalf("size: got %dx%d, want 120x1400", b.Dx(), b.Dy())
	}
	if c := out.NRGBAAt(60, 100); c.R < 200 || c.B > 50 {
		t.Errorf("top should be the former left edge (red), got %v", c)
	}
	if c := out.NRGBAAt(60, 1300); c.B < 200 || c.R > 50 {
		t.Errorf("bottom should be the former right edge (blue), got %v", c)
	}
}

func TestNormalize_RejectsBadBoxes(t *testing.T) {
	cal := GlucoseCalibration()
	img := createUniformImage(100, 100, tableColor)

	tests := []struct {
		name string
		box  BoundingBox
	}{
		{"zero width", BoundingBox{X: 10, Y: 10, Width: 0, Height: 50}},
		{"thin", BoundingBox{X: 10, Y: 10, Width: cal.MinStripSize - 1, Height: 50}},
		{"short", BoundingBox{X: 10, Y: 10, Width: 50, Height: 2}},
		{"outside", BoundingBox{X: 80, Y: 80, Width: 40, Height: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(img, tt.box, cal)
			if !errors.Is(err, ErrNoStripDetected) {
				t.Errorf("got %v, want ErrNoStripDetected", err)
			}
		})
	}
}

func TestExtractPad(t *testing.T) {
	cal := GlucoseCalibration()
	canonical := image.NewNRGBA(image.Rect(0, 0, cal.CanonicalWidth, cal.CanonicalHeight))
	pad := cal.Pad.Rect()
	for y := 0; y < cal.CanonicalHeight; y++ {
		for x := 0; x < cal.CanonicalWidth; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if image.Pt(x, y).In(pad) {
				c = color.NRGBA{10, 200, 30, 255}
			}
			canonical.SetNRGBA(x, y, c)
		}
	}

	out := ExtractPad(canonical, cal)
	if out.Bounds().Dx() != pad.Dx() || out.Bounds().Dy() != pad.Dy() {
		t.Fatalf("size: got %v, want %dx%d", out.Bounds(), pad.Dx(), pad.Dy())
	}
	s := SampleColor(out)
	if s.Median != [3]uint8{10, 200, 30} {
		t.Errorf("pad should contain only the painted color, median %v", s.Median)
	}
	if s.StdDev != [3]float64{} {
		t.Errorf("pad picked up pixels outside the rectangle: stddev %v", s.StdDev)
	}
}

func TestNormalize_TypedNilImage(t *testing.T) {
	var img *image.NRGBA
	_, err := Normalize(img, BoundingBox{X: 0, Y: 0, Width: 40, Height: 200}, GlucoseCalibration())
	if !errors.Is(err, ErrNoStripDetected) {
		t.Errorf("got %v, want ErrNoStripDetected", err)
	}
}
