package capture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
)

// ImageFile is a finite source yielding one decoded image, for static-image
// mode.
type ImageFile struct {
	img  image.Image
	done bool
}

// OpenImageFile decodes path eagerly so open failures surface at startup.
func OpenImageFile(path string) (*ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode input image %s: %w", path, err)
	}

	return &ImageFile{img: img}, nil
}

// NextFrame yields the image once, then io.EOF.
func (s *ImageFile) NextFrame() (image.Image, error) {
	if s.done {
		return nil, io.EOF
	}
	s.done = true
	return s.img, nil
}

// Close is a no-op; the file is fully read at open time.
func (s *ImageFile) Close() error {
	return nil
}
