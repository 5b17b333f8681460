//go:build gocv

package strip

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ContourLocator is an OpenCV implementation of Locator. It follows the
// same steps as OtsuLocator using OpenCV's contour tracing, so the
// enclosed area of each external contour is its polygon area.
//
// Build with -tags gocv; OpenCV 4 must be installed.
type ContourLocator struct{}

// Locate implements Locator.
func (ContourLocator) Locate(img image.Image) (BoundingBox, error) {
	if isEmptyImage(img) {
		return BoundingBox{}, fmt.Errorf("empty image: %w", ErrNoStripDetected)
	}

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return BoundingBox{}, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	// ImageToMatRGB stores channels in OpenCV's BGR order.
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{5, 5}, 0, 0, gocv.BorderDefault)

	minVal, maxVal, _, _ := gocv.MinMaxLoc(blurred)
	if minVal == maxVal {
		return BoundingBox{}, fmt.Errorf("featureless image: %w", ErrNoStripDetected)
	}

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(blurred, &mask, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	if borderDominant(mask) {
		gocv.BitwiseNot(mask, &mask)
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	if contours.Size() == 0 {
		return BoundingBox{}, fmt.Errorf("no external contour: %w", ErrNoStripDetected)
	}

	best, bestArea := 0, gocv.ContourArea(contours.At(0))
	for i := 1; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > bestArea {
			best, bestArea = i, area
		}
	}

	r := gocv.BoundingRect(contours.At(best))
	origin := img.Bounds().Min
	return BoundingBox{
		X:      r.Min.X + origin.X,
		Y:      r.Min.Y + origin.Y,
		Width:  r.Dx(),
		Height: r.Dy(),
	}, nil
}

// borderDominant reports whether most border pixels of a binary mask are set.
func borderDominant(mask gocv.Mat) bool {
	rows, cols := mask.Rows(), mask.Cols()
	var set, total int
	visit := func(y, x int) {
		total++
		if mask.GetUCharAt(y, x) > 0 {
			set++
		}
	}
	for x := 0; x < cols; x++ {
		visit(0, x)
		if rows > 1 {
			visit(rows-1, x)
		}
	}
	for y := 1; y < rows-1; y++ {
		visit(y, 0)
		if cols > 1 {
			visit(y, cols-1)
		}
	}
	return set*2 > total
}
