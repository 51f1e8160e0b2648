// Package capture provides the frame acquisition and operator input
// capabilities consumed by the pipeline: a gocv webcam source for live
// mode, a single-image source for static mode, and a raw-terminal key
// reader for one-shot operator signals.
package capture

import (
	"errors"
	"image"
)

// ErrDeviceUnavailable is returned when the capture device cannot be
// opened. Fatal at startup only.
var ErrDeviceUnavailable = errors.New("capture device unavailable")

// Source yields frames to process. Live sources block until a frame is
// available and never end; finite sources return io.EOF when drained.
type Source interface {
	NextFrame() (image.Image, error)
	Close() error
}
