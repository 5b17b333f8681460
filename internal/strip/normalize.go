package strip

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Normalize crops img to box, turns a landscape crop upright by rotating it
// 90° clockwise, and resamples it to the calibration's canonical frame with
// linear interpolation. Aspect ratio is not preserved: the pad offsets are
// defined in canonical pixels.
//
// A box smaller than cal.MinStripSize on either side, or one that does not
// lie inside the image, is rejected with ErrNoStripDetected.
func Normalize(img image.Image, box BoundingBox, cal Calibration) (*image.NRGBA, error) {
	if isEmptyImage(img) {
		return nil, fmt.Errorf("empty image: %w", ErrNoStripDetected)
	}
	if box.Width < cal.MinStripSize || box.Height < cal.MinStripSize {
		return nil, fmt.Errorf("strip region %dx%d below minimum size %d: %w",
			box.Width, box.Height, cal.MinStripSize, ErrNoStripDetected)
	}
	if !box.Rect().In(img.Bounds()) {
		return nil, fmt.Errorf("strip region %v outside image bounds %v: %w",
			box.Rect(), img.Bounds(), ErrNoStripDetected)
	}

	crop := imaging.Crop(img, box.Rect())
	if crop.Bounds().Dx() > crop.Bounds().Dy() {
		crop = imaging.Rotate270(crop)
	}
	return imaging.Resize(crop, cal.CanonicalWidth, cal.CanonicalHeight, imaging.Linear), nil
}

// ExtractPad crops the calibration's pad rectangle out of a canonical strip.
// Validate guarantees the rectangle lies inside the canonical frame.
func ExtractPad(canonical *image.NRGBA, cal Calibration) *image.NRGBA {
	return imaging.Crop(canonical, cal.Pad.Rect())
}
