// Package constants provides shared constants used across the codebase.
// Centralizing these values ensures consistency and makes them easier to modify.
package constants

// Raster sizes
const (
	// FaceSize is the edge length of the square every recognition sample
	// and query face is normalized to before training or prediction
	FaceSize = 64

	// PortraitSize is the edge length of the square portrait crops are
	// resized to before being written to disk
	PortraitSize = 256

	// DetectWidth and DetectHeight define the resolution video frames are
	// downscaled to before face detection in live mode
	DetectWidth  = 320
	DetectHeight = 240
)

// Detector defaults
const (
	// MinFaceSize is the smallest detection window the cascade runs at
	MinFaceSize = 20

	// MaxFaceSize is the largest detection window the cascade runs at
	MaxFaceSize = 1000

	// ShiftFactor determines how much the detection window moves between
	// evaluations, as a fraction of its size
	ShiftFactor = 0.1

	// ScaleFactor is the multiplier between consecutive detection window
	// sizes
	ScaleFactor = 1.1

	// IoUThreshold is the overlap above which raw detections are merged
	// into a single cluster
	IoUThreshold = 0.2

	// QualityThreshold is the minimum cascade score for a clustered
	// detection to be reported as a face
	QualityThreshold = 5.0
)

// Corpus layout directory names. PortraitsDir keeps the original on-disk
// spelling so databases written by older tools remain readable.
const (
	FacesDir     = "faces"
	PortraitsDir = "protraits"
)

// UnknownName is rendered when a predicted label has no entry in the
// label-to-name mapping.
const UnknownName = "unknown"
