// Package imaging loads photographs and renders images for transport.
//
// Images are decoded from files or readers in any registered format: PNG,
// JPEG, GIF, WebP, BMP and TIFF. Rendered output is always PNG, base64
// encoded so it can travel inside a JSON response.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. For
// rectangles, Min is inclusive and Max is exclusive, as in image.Rectangle.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The rendering functions are
// stateless and never modify their input.
package imaging
