// Package corpus manages the on-disk face database and its in-memory
// representation: labeled grayscale samples plus the label/name mapping.
//
// The on-disk schema is a two-level directory convention:
//
//	<root>/faces/<name>/<unixTimestamp>_<sequence>.jpg
//	<root>/protraits/<name>/<unixTimestamp>_<sequence>.jpg
package corpus

import (
	"errors"
	"image"
)

// ErrEmptyCorpus is returned when an operation needs at least one loaded
// sample (training, standard size lookup) and the corpus has none.
var ErrEmptyCorpus = errors.New("corpus contains no samples")

// Sample is one normalized grayscale face raster with its person label.
type Sample struct {
	Image *image.Gray
	Label int
}

// Corpus holds the loaded sample set and the two label/name mappings.
// The name-to-label direction is always 1:1; labels are scoped to a single
// load and are not stable across loads of the same directory tree.
type Corpus struct {
	Samples []Sample

	names  map[int]string
	labels map[string]int
}

// New returns an empty corpus.
func New() *Corpus {
	return &Corpus{
		names:  make(map[int]string),
		labels: make(map[string]int),
	}
}

// Len returns the number of loaded samples.
func (c *Corpus) Len() int {
	return len(c.Samples)
}

// Name resolves a label to a person name.
func (c *Corpus) Name(label int) (string, bool) {
	name, ok := c.names[label]
	return name, ok
}

// Label resolves a person name to its label.
func (c *Corpus) Label(name string) (int, bool) {
	label, ok := c.labels[name]
	return label, ok
}

// Names returns a copy of the label-to-name mapping.
func (c *Corpus) Names() map[int]string {
	out := make(map[int]string, len(c.names))
	for label, name := range c.names {
		out[label] = name
	}
	return out
}

// People returns the number of distinct names in the corpus.
func (c *Corpus) People() int {
	return len(c.labels)
}

// StandardSize returns the raster dimensions every training and query image
// must be normalized to. The first loaded sample fixes it for the corpus
// lifetime.
func (c *Corpus) StandardSize() (image.Point, error) {
	if len(c.Samples) == 0 {
		return image.Point{}, ErrEmptyCorpus
	}
	return c.Samples[0].Image.Bounds().Size(), nil
}

// EnsureLabel returns the label for name, minting the next free label for a
// name the corpus has never seen. Both mapping directions are updated before
// returning, so an unseen name can never silently merge into another
// person's data.
func (c *Corpus) EnsureLabel(name string) int {
	if label, ok := c.labels[name]; ok {
		return label
	}

	label := 0
	for existing := range c.names {
		if existing >= label {
			label = existing + 1
		}
	}

	c.bind(name, label)
	return label
}

// bind records a name/label pair in both directions.
func (c *Corpus) bind(name string, label int) {
	c.names[label] = name
	c.labels[name] = label
}

// add appends a normalized sample.
func (c *Corpus) add(img *image.Gray, label int) {
	c.Samples = append(c.Samples, Sample{Image: img, Label: label})
}
