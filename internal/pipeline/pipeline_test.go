package pipeline

import (
	"context"
	"image"
	"io"
	"os"
	"testing"

	"github.com/davidq/face-corpus/internal/corpus"
	"github.com/davidq/face-corpus/internal/recognizer"
)

// fakeSource yields the given frames in order, then io.EOF.
type fakeSource struct {
	frames []image.Image
	next   int
}

func (s *fakeSource) NextFrame() (image.Image, error) {
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.next]
	s.next++
	return frame, nil
}

func (s *fakeSource) Close() error { return nil }

// fakeDetector reports the same rectangles for every frame.
type fakeDetector struct {
	rects []image.Rectangle
}

func (d *fakeDetector) Detect(*image.Gray) ([]image.Rectangle, error) {
	return d.rects, nil
}

// recordingClassifier tracks training state so tests can observe when
// retraining happened relative to predictions.
type recordingClassifier struct {
	trainCalls  int
	trainedSize int
	predictSeen []int
}

func (c *recordingClassifier) Train(samples []corpus.Sample) error {
	c.trainCalls++
	c.trainedSize = len(samples)
	return nil
}

func (c *recordingClassifier) Predict(*image.Gray) (int, float64, error) {
	c.predictSeen = append(c.predictSeen, c.trainedSize)
	return 0, 0.5, nil
}

// newTestPipeline builds a pipeline over a one-sample corpus persisted in a
// temp root.
func newTestPipeline(t *testing.T, cls recognizer.Classifier, frames []image.Image, rects []image.Rectangle) (*Pipeline, *corpus.Corpus) {
	t.Helper()

	c := corpus.New()
	store := corpus.NewStore(t.TempDir())
	if _, _, err := store.AppendFace(c, image.NewGray(image.Rect(0, 0, 64, 64)), "alice"); err != nil {
		t.Fatalf("AppendFace: %v", err)
	}

	sess := recognizer.NewSession(cls, c)
	if err := sess.Train(); err != nil {
		t.Fatalf("Train: %v", err)
	}

	return &Pipeline{
		Source:     &fakeSource{frames: frames},
		Detector:   &fakeDetector{rects: rects},
		Session:    sess,
		Store:      store,
		Signals:    NewSignals(),
		PersonName: "alice",
		DetectSize: image.Pt(320, 240),
	}, c
}

func TestProcessFrame_RescalesGeometry(t *testing.T) {
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 640, 480))}
	rects := []image.Rectangle{image.Rect(10, 10, 30, 30)}

	p, _ := newTestPipeline(t, &recordingClassifier{}, frames, rects)

	records, err := p.ProcessFrame()
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	// 640x480 over a 320x240 detector input doubles both axes.
	want := image.Rect(20, 20, 60, 60)
	if records[0].Rect != want {
		t.Errorf("record rect = %v, expected %v", records[0].Rect, want)
	}
}

func TestProcessFrame_RatioFixedFromFirstFrame(t *testing.T) {
	frames := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 640, 480)),
		image.NewRGBA(image.Rect(0, 0, 320, 240)),
	}
	rects := []image.Rectangle{image.Rect(10, 10, 30, 30)}

	p, _ := newTestPipeline(t, &recordingClassifier{}, frames, rects)

	if _, err := p.ProcessFrame(); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	records, err := p.ProcessFrame()
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}

	// The ratio from the first frame still applies, even though the
	// second frame matches the detector resolution exactly.
	want := image.Rect(20, 20, 60, 60)
	if records[0].Rect != want {
		t.Errorf("record rect = %v, expected %v (first-frame ratio)", records[0].Rect, want)
	}
}

func TestProcessFrame_SaveFaceRetrainsBeforeNextFace(t *testing.T) {
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 640, 480))}
	rects := []image.Rectangle{
		image.Rect(10, 10, 30, 30),
		image.Rect(50, 50, 80, 80),
	}

	cls := &recordingClassifier{}
	p, c := newTestPipeline(t, cls, frames, rects)
	p.Signals.RequestSaveFace()

	var saved string
	p.OnSave = func(kind, path string) {
		if kind == "face" {
			saved = path
		}
	}

	records, err := p.ProcessFrame()
	if err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Only the first face consumed the signal.
	if c.Len() != 2 {
		t.Errorf("expected exactly one appended sample, corpus has %d", c.Len())
	}
	if cls.trainCalls != 2 {
		t.Errorf("expected initial train + one retrain, got %d trains", cls.trainCalls)
	}

	// The first face was predicted against the pre-save model, the second
	// against the retrained one.
	if len(cls.predictSeen) != 2 || cls.predictSeen[0] != 1 || cls.predictSeen[1] != 2 {
		t.Errorf("predictions saw training sizes %v, expected [1 2]", cls.predictSeen)
	}

	if saved == "" {
		t.Fatal("expected a saved face path")
	}
	if _, err := os.Stat(saved); err != nil {
		t.Errorf("saved face missing: %v", err)
	}

	// The signal is spent.
	if p.Signals.TakeSaveFace() {
		t.Error("save-face signal still pending after the frame")
	}
}

func TestProcessFrame_SignalSurvivesEmptyFrame(t *testing.T) {
	frames := []image.Image{
		image.NewRGBA(image.Rect(0, 0, 640, 480)),
		image.NewRGBA(image.Rect(0, 0, 640, 480)),
	}

	p, c := newTestPipeline(t, &recordingClassifier{}, frames, nil)
	p.Signals.RequestSaveFace()

	// No detections: the pending signal must not be consumed.
	p.Detector = &fakeDetector{}
	if _, err := p.ProcessFrame(); err != nil {
		t.Fatalf("empty frame: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("empty frame consumed the signal, corpus has %d samples", c.Len())
	}

	p.Detector = &fakeDetector{rects: []image.Rectangle{image.Rect(10, 10, 30, 30)}}
	if _, err := p.ProcessFrame(); err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("expected the save on the next detected face, corpus has %d samples", c.Len())
	}
}

func TestProcessFrame_SavePortrait(t *testing.T) {
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 640, 480))}
	rects := []image.Rectangle{image.Rect(10, 10, 30, 30)}

	p, c := newTestPipeline(t, &recordingClassifier{}, frames, rects)
	p.Signals.RequestSavePortrait()

	var saved string
	p.OnSave = func(kind, path string) {
		if kind == "portrait" {
			saved = path
		}
	}

	if _, err := p.ProcessFrame(); err != nil {
		t.Fatalf("ProcessFrame: %v", err)
	}

	if saved == "" {
		t.Fatal("expected a saved portrait path")
	}
	if _, err := os.Stat(saved); err != nil {
		t.Errorf("saved portrait missing: %v", err)
	}

	// Portraits never touch the recognition corpus.
	if c.Len() != 1 {
		t.Errorf("portrait save mutated the corpus: %d samples", c.Len())
	}
}

func TestRun_StopsOnExitSignal(t *testing.T) {
	// An endless source; only the exit signal can end the loop.
	frames := make([]image.Image, 100)
	for i := range frames {
		frames[i] = image.NewRGBA(image.Rect(0, 0, 64, 48))
	}

	p, _ := newTestPipeline(t, &recordingClassifier{}, frames, nil)

	processed := 0
	err := p.Run(context.Background(), func([]Record) {
		processed++
		if processed == 3 {
			p.Signals.RequestExit()
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if processed != 3 {
		t.Errorf("expected 3 processed frames, got %d", processed)
	}
}

func TestRun_StopsOnSourceEOF(t *testing.T) {
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 64, 48))}

	p, _ := newTestPipeline(t, &recordingClassifier{}, frames, nil)

	processed := 0
	if err := p.Run(context.Background(), func([]Record) { processed++ }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if processed != 1 {
		t.Errorf("expected 1 processed frame, got %d", processed)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 64, 48))}
	p, _ := newTestPipeline(t, &recordingClassifier{}, frames, nil)

	if err := p.Run(ctx, nil); err == nil {
		t.Fatal("expected context error")
	}
}
