package capture

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Webcam reads frames from a video capture device.
type Webcam struct {
	device *gocv.VideoCapture
	frame  gocv.Mat
}

// OpenWebcam opens a capture device by id.
func OpenWebcam(deviceID int) (*Webcam, error) {
	device, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("device %d: %w", deviceID, ErrDeviceUnavailable)
	}
	if !device.IsOpened() {
		device.Close()
		return nil, fmt.Errorf("device %d: %w", deviceID, ErrDeviceUnavailable)
	}

	return &Webcam{device: device, frame: gocv.NewMat()}, nil
}

// NextFrame blocks until the device produces the next frame.
func (w *Webcam) NextFrame() (image.Image, error) {
	if ok := w.device.Read(&w.frame); !ok || w.frame.Empty() {
		return nil, fmt.Errorf("cannot read frame: %w", ErrDeviceUnavailable)
	}

	img, err := w.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("cannot convert frame: %w", err)
	}
	return img, nil
}

// Close releases the device.
func (w *Webcam) Close() error {
	if err := w.frame.Close(); err != nil {
		w.device.Close()
		return err
	}
	return w.device.Close()
}
