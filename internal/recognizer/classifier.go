// Package recognizer wraps a statistical face classifier behind a session
// that keeps the working sample set and the trained state consistent.
package recognizer

import (
	"errors"
	"image"

	"github.com/davidq/face-corpus/internal/corpus"
)

var (
	// ErrNotTrained is returned by Predict before any successful Train.
	ErrNotTrained = errors.New("classifier has not been trained")

	// ErrDimensionMismatch is returned when an image passed to Train or
	// Predict does not match the trained standard size. This is a
	// programming-contract violation: every image must go through the
	// normalize step first.
	ErrDimensionMismatch = errors.New("image dimensions do not match the trained sample size")
)

// Classifier maps a fixed-size grayscale face image to a predicted label
// and a confidence score. Lower confidence values mean a closer match;
// zero is an exact match.
type Classifier interface {
	// Train replaces all prior training state with the given sample set.
	Train(samples []corpus.Sample) error

	// Predict returns the best label for an image already normalized to
	// the trained standard size.
	Predict(img *image.Gray) (label int, confidence float64, err error)
}
