package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/davidq/face-corpus/internal/config"
	"github.com/davidq/face-corpus/internal/corpus"
	"github.com/davidq/face-corpus/internal/detector"
	"github.com/davidq/face-corpus/internal/recognizer"
)

// loadSession loads the corpus with a progress bar and returns a trained
// recognition session over it.
func loadSession(dataDir string) (*recognizer.Session, error) {
	fmt.Printf("Loading face database from %s...\n", dataDir)

	var bar *progressbar.ProgressBar
	loader := &corpus.Loader{
		Root: dataDir,
		Progress: func(name string, done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("Loading people"),
					progressbar.OptionShowCount(),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionFullWidth(),
				)
			}
			_ = bar.Add(1)
		},
	}

	c, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Println()
	}
	fmt.Printf("Loaded %d samples of %d people\n", c.Len(), c.People())

	sess := recognizer.NewSession(recognizer.NewNearest(), c)
	if err := sess.Train(); err != nil {
		return nil, fmt.Errorf("cannot train recognizer: %w", err)
	}
	return sess, nil
}

// newDetector builds the configured detector backend.
func newDetector(cfg *config.Config, cascade, backend string) (detector.Detector, error) {
	if cascade == "" {
		cascade = cfg.Cascade
	}
	if backend == "" {
		backend = cfg.Detector
	}

	switch backend {
	case "pigo":
		return detector.NewPigo(cascade, detector.Params{
			MinSize:          cfg.DetectorParams.MinSize,
			MaxSize:          cfg.DetectorParams.MaxSize,
			ShiftFactor:      cfg.DetectorParams.ShiftFactor,
			ScaleFactor:      cfg.DetectorParams.ScaleFactor,
			IoUThreshold:     cfg.DetectorParams.IoUThreshold,
			QualityThreshold: cfg.DetectorParams.QualityThreshold,
		})
	case "haar":
		return detector.NewHaar(cascade)
	default:
		return nil, fmt.Errorf("unknown detector backend %q (expected pigo or haar)", backend)
	}
}
