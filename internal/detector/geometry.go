package detector

import "image"

// ScaleRect maps a rectangle from detector coordinates to original-image
// coordinates by the per-axis ratios of original to detector dimensions.
func ScaleRect(r image.Rectangle, sx, sy float64) image.Rectangle {
	return image.Rect(
		int(float64(r.Min.X)*sx),
		int(float64(r.Min.Y)*sy),
		int(float64(r.Max.X)*sx),
		int(float64(r.Max.Y)*sy),
	)
}
