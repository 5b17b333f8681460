package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// DefaultOutlineColor is used when the requested outline color does not parse.
var DefaultOutlineColor = color.RGBA{255, 0, 0, 255}

// Annotate draws a rectangle outline of the given thickness over a copy of img
// and returns it encoded as PNG. The rectangle is clipped to the image.
//
// colorHex accepts "#RRGGBB" or "#RRGGBBAA"; anything else falls back to
// DefaultOutlineColor.
func Annotate(img image.Image, box image.Rectangle, colorHex string, thickness int) (*RenderResult, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("nothing to annotate: %w", ErrEmptyImage)
	}
	bounds := img.Bounds()
	clipped := box.Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("box %v lies outside image bounds %v", box, bounds)
	}
	if thickness < 1 {
		thickness = 1
	}

	outline, err := parseHexColor(colorHex)
	if err != nil {
		outline = DefaultOutlineColor
	}

	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	src := image.NewUniform(outline)
	edges := []image.Rectangle{
		image.Rect(clipped.Min.X, clipped.Min.Y, clipped.Max.X, clipped.Min.Y+thickness),
		image.Rect(clipped.Min.X, clipped.Max.Y-thickness, clipped.Max.X, clipped.Max.Y),
		image.Rect(clipped.Min.X, clipped.Min.Y, clipped.Min.X+thickness, clipped.Max.Y),
		image.Rect(clipped.Max.X-thickness, clipped.Min.Y, clipped.Max.X, clipped.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(result, e.Intersect(clipped), src, image.Point{}, draw.Over)
	}

	return EncodePNG(result, 1.0)
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
