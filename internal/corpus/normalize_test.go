package corpus

import (
	"image"
	"image/color"
	"testing"
)

func TestNormalize_AlwaysStandardSize(t *testing.T) {
	size := image.Pt(64, 64)

	tests := []struct {
		name  string
		input image.Image
	}{
		{"larger color image", image.NewRGBA(image.Rect(0, 0, 640, 480))},
		{"smaller gray image", image.NewGray(image.Rect(0, 0, 12, 30))},
		{"already correct size", image.NewGray(image.Rect(0, 0, 64, 64))},
		{"degenerate 1x1", image.NewGray(image.Rect(0, 0, 1, 1))},
		{"offset sub-image bounds", image.NewGray(image.Rect(100, 50, 180, 130))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(tt.input, size)
			got := out.Bounds().Size()
			if got != size {
				t.Errorf("normalized size = %v, expected %v", got, size)
			}
		})
	}
}

func TestNormalize_PreservesIntensity(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 128, 128))
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}

	out := Normalize(src, image.Pt(64, 64))

	// A uniform image must stay uniform after interpolation.
	center := out.GrayAt(32, 32).Y
	if center != 200 {
		t.Errorf("expected intensity 200 after resize, got %d", center)
	}
}

func TestGrayscale_PassthroughForGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	if Grayscale(src) != src {
		t.Error("expected the same *image.Gray back for gray input")
	}
}

func TestResizeColor_Size(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 33, 77))
	out := ResizeColor(src, image.Pt(256, 256))
	if got := out.Bounds().Size(); got != image.Pt(256, 256) {
		t.Errorf("portrait size = %v, expected 256x256", got)
	}
}
