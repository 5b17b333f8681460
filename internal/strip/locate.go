package strip

import (
	"fmt"
	"image"
	"reflect"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
)

// BoundingBox is an axis-aligned rectangle in source-image pixels.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect returns the box as an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Locator finds the bounding box of the principal object in a photograph.
type Locator interface {
	Locate(img image.Image) (BoundingBox, error)
}

// blurRadius gives bild's separable Gaussian a 5-tap kernel, i.e. a 5x5 blur.
const blurRadius = 2

// OtsuLocator segments the image with a global Otsu threshold and returns
// the bounding box of the largest outermost region.
//
// Whichever class dominates the image border is taken as background, so a
// dark strip on a light surface and a light strip on a dark surface are both
// found.
type OtsuLocator struct{}

// NewOtsuLocator returns the default locator.
func NewOtsuLocator() *OtsuLocator {
	return &OtsuLocator{}
}

// Locate implements Locator.
//
// # Errors
//
//   - ErrNoStripDetected if img is nil (including a typed nil) or empty
//   - ErrNoStripDetected if the image has a single intensity level after blurring
//   - ErrNoStripDetected if thresholding leaves no foreground region
func (l *OtsuLocator) Locate(img image.Image) (BoundingBox, error) {
	if isEmptyImage(img) {
		return BoundingBox{}, fmt.Errorf("empty image: %w", ErrNoStripDetected)
	}

	// Clone rebases the pixels at (0,0); box coordinates are shifted back below.
	smoothed := blur.Gaussian(effect.Grayscale(imaging.Clone(img)), blurRadius)

	level, ok := otsuThreshold(histogram.NewRGBAHistogram(smoothed).R.Bins)
	if !ok {
		return BoundingBox{}, fmt.Errorf("featureless image: %w", ErrNoStripDetected)
	}

	mask := binarize(smoothed, level)
	mask.invertIfBorderDominant()

	best, ok := largestRegion(externalRegions(mask))
	if !ok {
		return BoundingBox{}, fmt.Errorf("no foreground region above level %d: %w", level, ErrNoStripDetected)
	}

	origin := img.Bounds().Min
	best.box.X += origin.X
	best.box.Y += origin.Y
	return best.box, nil
}

// binarize marks pixels whose gray level is strictly above level. The gray
// level is read from the red channel; the input is already grayscale.
func binarize(gray *image.RGBA, level int) *binaryMask {
	b := gray.Bounds()
	m := newBinaryMask(b.Dx(), b.Dy())
	for y := 0; y < m.height; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < m.width; x++ {
			m.pix[y*m.width+x] = int(row[x*4]) > level
		}
	}
	return m
}

// isEmptyImage reports whether img has no pixels. A nil pointer held in a
// non-nil interface, such as (*image.RGBA)(nil), counts as empty because
// calling Bounds on it panics.
func isEmptyImage(img image.Image) bool {
	if img == nil {
		return true
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Ptr && v.IsNil() {
		return true
	}
	return img.Bounds().Empty()
}
