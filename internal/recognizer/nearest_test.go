package recognizer

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/davidq/face-corpus/internal/corpus"
)

// grayPattern builds a 64x64 raster with a simple intensity gradient keyed
// by seed, so different seeds produce clearly separated vectors.
func grayPattern(seed uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(int(seed)+x*y/32) % 255})
		}
	}
	return img
}

func TestNearest_TrainEmpty(t *testing.T) {
	err := NewNearest().Train(nil)
	if err == nil {
		t.Fatal("expected error for empty sample set")
	}
	if !errors.Is(err, corpus.ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestNearest_PredictUntrained(t *testing.T) {
	_, _, err := NewNearest().Predict(grayPattern(0))
	if !errors.Is(err, ErrNotTrained) {
		t.Errorf("expected ErrNotTrained, got %v", err)
	}
}

func TestNearest_RoundTrip(t *testing.T) {
	samples := []corpus.Sample{
		{Image: grayPattern(10), Label: 0},
		{Image: grayPattern(120), Label: 1},
		{Image: grayPattern(200), Label: 2},
	}

	cls := NewNearest()
	if err := cls.Train(samples); err != nil {
		t.Fatalf("Train: %v", err)
	}

	for _, sample := range samples {
		label, confidence, err := cls.Predict(sample.Image)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if label != sample.Label {
			t.Errorf("predicted label %d, expected %d", label, sample.Label)
		}
		// The exact training image is a zero-distance match.
		if math.Abs(confidence) > 1e-6 {
			t.Errorf("expected zero distance for exact match, got %g", confidence)
		}
	}
}

func TestNearest_DimensionMismatch(t *testing.T) {
	cls := NewNearest()
	if err := cls.Train([]corpus.Sample{{Image: grayPattern(10), Label: 0}}); err != nil {
		t.Fatalf("Train: %v", err)
	}

	_, _, err := cls.Predict(image.NewGray(image.Rect(0, 0, 32, 32)))
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNearest_TrainMixedSizes(t *testing.T) {
	samples := []corpus.Sample{
		{Image: grayPattern(10), Label: 0},
		{Image: image.NewGray(image.Rect(0, 0, 32, 32)), Label: 1},
	}
	err := NewNearest().Train(samples)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestNearest_AllBlackRoundTrip(t *testing.T) {
	black := image.NewGray(image.Rect(0, 0, 64, 64))

	cls := NewNearest()
	if err := cls.Train([]corpus.Sample{
		{Image: black, Label: 0},
		{Image: grayPattern(200), Label: 1},
	}); err != nil {
		t.Fatalf("Train: %v", err)
	}

	label, confidence, err := cls.Predict(black)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if label != 0 {
		t.Errorf("predicted label %d, expected 0", label)
	}
	if math.Abs(confidence) > 1e-6 {
		t.Errorf("expected zero distance, got %g", confidence)
	}
}
