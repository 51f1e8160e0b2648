package detector

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Haar detects faces with an OpenCV Haar cascade, matching the detector the
// original collection tools shipped with. Selected with --detector haar.
type Haar struct {
	classifier gocv.CascadeClassifier
}

// NewHaar loads a Haar cascade XML file.
func NewHaar(cascadeFile string) (*Haar, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadeFile) {
		classifier.Close()
		return nil, fmt.Errorf("cannot load haar cascade file %s", cascadeFile)
	}
	return &Haar{classifier: classifier}, nil
}

// Detect runs the cascade over img.
func (d *Haar) Detect(img *image.Gray) ([]image.Rectangle, error) {
	mat, err := gocv.ImageGrayToMatGray(img)
	if err != nil {
		return nil, fmt.Errorf("cannot convert image for detection: %w", err)
	}
	defer mat.Close()

	return d.classifier.DetectMultiScale(mat), nil
}

// Close releases the cascade.
func (d *Haar) Close() error {
	return d.classifier.Close()
}
