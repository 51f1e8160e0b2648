package detector

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// Params tunes the pigo cascade run. Zero values are not usable; load
// defaults from the config package.
type Params struct {
	MinSize          int
	MaxSize          int
	ShiftFactor      float64
	ScaleFactor      float64
	IoUThreshold     float64
	QualityThreshold float64
}

// Pigo detects faces with the pigo pixel-intensity cascade. It needs no
// cgo and is the default backend.
type Pigo struct {
	classifier *pigo.Pigo
	params     Params
}

// NewPigo reads and unpacks a binary pigo cascade file.
func NewPigo(cascadeFile string, params Params) (*Pigo, error) {
	data, err := os.ReadFile(cascadeFile)
	if err != nil {
		return nil, fmt.Errorf("cannot read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("cannot unpack cascade file %s: %w", cascadeFile, err)
	}

	return &Pigo{classifier: classifier, params: params}, nil
}

// Detect runs the cascade over img and returns clustered detections above
// the quality threshold as rectangles. img must be origin-aligned (its Pix
// slice starting at the bounds minimum), which every raster produced by
// corpus.Normalize is.
func (d *Pigo) Detect(img *image.Gray) ([]image.Rectangle, error) {
	bounds := img.Bounds()

	maxSize := d.params.MaxSize
	if m := min(bounds.Dx(), bounds.Dy()); maxSize > m {
		maxSize = m
	}

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: img.Pix,
			Rows:   bounds.Dy(),
			Cols:   bounds.Dx(),
			Dim:    img.Stride,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.params.IoUThreshold)

	rects := make([]image.Rectangle, 0, len(dets))
	for _, det := range dets {
		if float64(det.Q) < d.params.QualityThreshold {
			continue
		}
		half := det.Scale / 2
		rects = append(rects, image.Rect(det.Col-half, det.Row-half, det.Col+half, det.Row+half))
	}
	return rects, nil
}
