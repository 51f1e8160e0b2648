// Package detector provides the face detection capability consumed by the
// frame pipeline, with a pure-Go pigo backend and an OpenCV Haar cascade
// backend, plus the geometry helpers that map detector coordinates back to
// original-image coordinates.
package detector

import "image"

// Detector finds axis-aligned face rectangles in a grayscale image.
// Rectangles are in the coordinate space of the given image; scaling back
// to the original frame is the caller's concern.
type Detector interface {
	Detect(img *image.Gray) ([]image.Rectangle, error)
}
