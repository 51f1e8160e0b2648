package recognizer

import (
	"fmt"
	"image"

	"github.com/davidq/face-corpus/internal/constants"
	"github.com/davidq/face-corpus/internal/corpus"
)

// Prediction is one classification result. Confidence is a distance score:
// lower means a closer match.
type Prediction struct {
	Label      int
	Name       string
	Confidence float64
}

// Session owns the working sample set and the trained classifier state.
// It is not safe for concurrent use; the single processing loop owns it.
type Session struct {
	cls    Classifier
	corpus *corpus.Corpus
}

// NewSession wraps a classifier around a loaded corpus.
func NewSession(cls Classifier, c *corpus.Corpus) *Session {
	return &Session{cls: cls, corpus: c}
}

// Corpus returns the working corpus.
func (s *Session) Corpus() *corpus.Corpus {
	return s.corpus
}

// Train performs a full train over the current corpus, replacing any prior
// training state. An empty corpus fails with corpus.ErrEmptyCorpus before
// any prediction can happen.
func (s *Session) Train() error {
	return s.cls.Train(s.corpus.Samples)
}

// Predict classifies an image already normalized to the corpus standard
// size. A predicted label with no entry in the label-to-name mapping (such
// as a sentinel -1) renders as the unknown marker instead of failing.
func (s *Session) Predict(img *image.Gray) (Prediction, error) {
	label, confidence, err := s.cls.Predict(img)
	if err != nil {
		return Prediction{}, err
	}

	name, ok := s.corpus.Name(label)
	if !ok {
		name = constants.UnknownName
	}
	return Prediction{Label: label, Name: name, Confidence: confidence}, nil
}

// RetrainWith appends one sample through the store and retrains on the full
// set, so the model reflects the save immediately. The retrain is O(corpus
// size) per append; for interactive collection rates that latency spike is
// accepted, and corpora beyond a few hundred images will feel it.
func (s *Session) RetrainWith(img image.Image, name string, store *corpus.Store) (int, string, error) {
	label, path, err := store.AppendFace(s.corpus, img, name)
	if err != nil {
		return 0, "", err
	}

	if err := s.cls.Train(s.corpus.Samples); err != nil {
		return label, path, fmt.Errorf("retrain after append: %w", err)
	}
	return label, path, nil
}
