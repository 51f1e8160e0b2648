// Package pipeline drives the per-frame decision loop: acquire a frame,
// detect faces, normalize and classify each one, fire operator-requested
// side effects, and emit one record per detection.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/davidq/face-corpus/internal/capture"
	"github.com/davidq/face-corpus/internal/constants"
	"github.com/davidq/face-corpus/internal/corpus"
	"github.com/davidq/face-corpus/internal/detector"
	"github.com/davidq/face-corpus/internal/recognizer"

	"golang.org/x/image/draw"
)

// Record is the decision for one detected face: geometry in original-image
// coordinates plus the classification.
type Record struct {
	Rect       image.Rectangle
	Label      int
	Name       string
	Confidence float64
}

// Pipeline processes frames sequentially, single-threaded and blocking:
// acquisition, detection, prediction and disk writes never overlap, and a
// retrain after a save blocks the loop for its full duration.
type Pipeline struct {
	Source   capture.Source
	Detector detector.Detector
	Session  *recognizer.Session

	// Store and Signals enable the corpus-mutating side effects; both nil
	// in static-image mode.
	Store   *corpus.Store
	Signals *Signals

	// PersonName is the operator's identity for save side effects.
	PersonName string

	// DetectSize is the resolution frames are downscaled to before
	// detection. Zero means detection runs at native frame resolution.
	DetectSize image.Point

	// OnSave is called with the artifact kind and path after each
	// successful save; OnError is called with non-fatal side-effect
	// failures. Either may be nil.
	OnSave  func(kind, path string)
	OnError func(err error)

	// The original-to-detector ratio is computed once from the first
	// acquired frame and held for the session lifetime. If the source
	// changes resolution mid-stream, rectangle placement will be wrong.
	sx, sy float64
	scaled bool
}

// ProcessFrame runs one frame through the decision states and returns one
// record per detected face. Prediction never fails a frame: an unrecognized
// face renders as the unknown marker. Side-effect write failures are
// reported through OnError and do not stop processing. The error return is
// reserved for acquisition and detection failures; io.EOF is passed through
// when the source is drained.
func (p *Pipeline) ProcessFrame() ([]Record, error) {
	frame, err := p.Source.NextFrame()
	if err != nil {
		return nil, err
	}

	bounds := frame.Bounds()
	if !p.scaled {
		p.sx, p.sy = 1, 1
		if p.DetectSize != (image.Point{}) {
			p.sx = float64(bounds.Dx()) / float64(p.DetectSize.X)
			p.sy = float64(bounds.Dy()) / float64(p.DetectSize.Y)
		}
		p.scaled = true
	}

	detectSize := p.DetectSize
	if detectSize == (image.Point{}) {
		detectSize = bounds.Size()
	}
	detectGray := corpus.Normalize(frame, detectSize)

	rects, err := p.Detector.Detect(detectGray)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}

	std, err := p.Session.Corpus().StandardSize()
	if err != nil {
		return nil, fmt.Errorf("cannot normalize faces: %w", err)
	}

	fullGray := corpus.Grayscale(frame)

	records := make([]Record, 0, len(rects))
	for _, r := range rects {
		rect := detector.ScaleRect(r, p.sx, p.sy).Intersect(bounds)
		if rect.Empty() {
			continue
		}

		face := corpus.Normalize(fullGray.SubImage(rect), std)

		record := Record{Rect: rect, Label: -1, Name: constants.UnknownName}
		if pred, err := p.Session.Predict(face); err == nil {
			record.Label = pred.Label
			record.Name = pred.Name
			record.Confidence = pred.Confidence
		} else {
			p.reportError(fmt.Errorf("prediction failed: %w", err))
		}

		p.decideSideEffects(frame, rect, face)

		records = append(records, record)
	}

	return records, nil
}

// decideSideEffects fires at most one save of each kind per frame; the
// first face of the frame consumes the pending signals. The retrain after a
// face save completes before the next face of the same frame is predicted,
// so that face already benefits from the updated model.
func (p *Pipeline) decideSideEffects(frame image.Image, rect image.Rectangle, face *image.Gray) {
	if p.Signals == nil || p.Store == nil {
		return
	}

	if p.Signals.TakeSaveFace() {
		if _, path, err := p.Session.RetrainWith(face, p.PersonName, p.Store); err != nil {
			p.reportError(fmt.Errorf("cannot save face: %w", err))
		} else {
			p.reportSave("face", path)
		}
	}

	if p.Signals.TakeSavePortrait() {
		if path, err := p.Store.SavePortrait(p.PersonName, cropColor(frame, rect)); err != nil {
			p.reportError(fmt.Errorf("cannot save portrait: %w", err))
		} else {
			p.reportSave("portrait", path)
		}
	}
}

// Run processes frames until the operator requests exit, the context is
// cancelled, or a finite source is drained. Cancellation is only observed
// between frames; no operation is interrupted mid-flight.
func (p *Pipeline) Run(ctx context.Context, each func([]Record)) error {
	for {
		if p.Signals != nil && p.Signals.Exiting() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		records, err := p.ProcessFrame()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if each != nil {
			each(records)
		}
	}
}

func (p *Pipeline) reportSave(kind, path string) {
	if p.OnSave != nil {
		p.OnSave(kind, path)
	}
}

func (p *Pipeline) reportError(err error) {
	if p.OnError != nil {
		p.OnError(err)
	}
}

// cropColor copies the original-resolution color region under rect.
func cropColor(frame image.Image, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), frame, rect.Min, draw.Src)
	return out
}
