package strip

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// ColorSample is the representative color of a pad region.
type ColorSample struct {
	// Lab is the median color in CIE-Lab (D65).
	Lab LabColor `json:"lab"`

	// Hex is the 8-bit median color as "#RRGGBB".
	Hex string `json:"hex"`

	// Median holds the per-channel 8-bit medians in R, G, B order.
	Median [3]uint8 `json:"median_rgb"`

	// StdDev holds the per-channel standard deviation in 8-bit units. Large
	// values mean the pad is unevenly colored or partly covered by glare.
	StdDev [3]float64 `json:"stddev_rgb"`

	// Pixels is the number of pixels sampled.
	Pixels int `json:"pixels"`
}

// SampleColor computes the per-channel median of the pad and converts it to
// CIE-Lab. The median keeps specular highlights and small blemishes from
// pulling the result. For an even pixel count the two middle values are
// averaged and truncated to 8 bits.
func SampleColor(pad image.Image) ColorSample {
	b := pad.Bounds()
	n := b.Dx() * b.Dy()
	if n <= 0 {
		return ColorSample{}
	}

	hist := histogram.NewRGBAHistogram(pad)
	median := [3]uint8{
		binMedian(hist.R.Bins, n),
		binMedian(hist.G.Bins, n),
		binMedian(hist.B.Bins, n),
	}

	channels := [3][]float64{make([]float64, 0, n), make([]float64, 0, n), make([]float64, 0, n)}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := pad.At(x, y).RGBA()
			channels[0] = append(channels[0], float64(r>>8))
			channels[1] = append(channels[1], float64(g>>8))
			channels[2] = append(channels[2], float64(bl>>8))
		}
	}
	var spread [3]float64
	if n > 1 {
		for i, c := range channels {
			spread[i] = stat.StdDev(c, nil)
		}
	}

	return ColorSample{
		Lab:    labFromRGB8(median[0], median[1], median[2]),
		Hex:    fmt.Sprintf("#%02X%02X%02X", median[0], median[1], median[2]),
		Median: median,
		StdDev: spread,
		Pixels: n,
	}
}

// labFromRGB8 converts an 8-bit sRGB color to CIE-Lab on the 0-100 scale.
func labFromRGB8(r, g, b uint8) LabColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	l, a, bb := c.Lab()
	return LabColor{L: l * 100, A: a * 100, B: bb * 100}
}

// binMedian returns the median of n samples summarized by a 256-bin
// histogram, averaging the two middle samples when n is even.
func binMedian(bins []int, n int) uint8 {
	lowRank, highRank := (n-1)/2, n/2
	low, high := -1, -1
	seen := 0
	for v, count := range bins {
		seen += count
		if low < 0 && seen > lowRank {
			low = v
		}
		if seen > highRank {
			high = v
			break
		}
	}
	return uint8((low + high) / 2)
}
