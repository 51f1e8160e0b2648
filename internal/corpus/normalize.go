package corpus

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Normalize converts img to grayscale and scales it to exactly size using
// CatmullRom interpolation. The output bounds are always size regardless of
// the input dimensions, including degenerate 1x1 inputs and inputs that
// already match.
func Normalize(img image.Image, size image.Point) *image.Gray {
	gray := Grayscale(img)
	if b := gray.Bounds(); b.Dx() == size.X && b.Dy() == size.Y {
		return gray
	}

	resized := image.NewGray(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(resized, resized.Bounds(), gray, gray.Bounds(), draw.Src, nil)
	return resized
}

// Grayscale converts an image to single-channel grayscale. An input that is
// already *image.Gray is returned as is.
func Grayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// ResizeColor scales a color image to exactly size, keeping its channels.
// Used for portrait crops, which are stored in the original colors.
func ResizeColor(img image.Image, size image.Point) *image.RGBA {
	resized := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)
	return resized
}

// decodeImage reads and decodes a single image file. Supported formats are
// whatever codecs are registered above (jpeg, png, gif, bmp).
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode image %s: %w", path, err)
	}
	return img, nil
}

// encodeJPEG writes img to path as JPEG.
func encodeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	return f.Close()
}
