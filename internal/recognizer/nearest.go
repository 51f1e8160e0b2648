package recognizer

import (
	"fmt"
	"image"

	"github.com/coder/hnsw"

	"github.com/davidq/face-corpus/internal/corpus"
)

// maxNeighbors is the HNSW M parameter: the number of graph edges kept per
// node.
const maxNeighbors = 16

// Nearest is a nearest-neighbour classifier over flattened grayscale
// rasters. Train rebuilds an HNSW graph with cosine distance; Predict is a
// 1-NN search whose confidence is the cosine distance to the closest
// training sample (0 for an exact match).
type Nearest struct {
	graph  *hnsw.Graph[int]
	labels map[int]int
	size   image.Point
}

// NewNearest returns an untrained classifier.
func NewNearest() *Nearest {
	return &Nearest{}
}

// Train rebuilds the index from the full sample set, replacing all prior
// state. All samples must share one raster size; the first sample fixes it.
func (n *Nearest) Train(samples []corpus.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("cannot train: %w", corpus.ErrEmptyCorpus)
	}

	size := samples[0].Image.Bounds().Size()

	g := hnsw.NewGraph[int]()
	g.M = maxNeighbors
	g.Ml = 1.0 / float64(maxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	labels := make(map[int]int, len(samples))
	for i, sample := range samples {
		if got := sample.Image.Bounds().Size(); got != size {
			return fmt.Errorf("sample %d is %v, expected %v: %w", i, got, size, ErrDimensionMismatch)
		}
		g.Add(hnsw.MakeNode(i, flatten(sample.Image)))
		labels[i] = sample.Label
	}

	n.graph = g
	n.labels = labels
	n.size = size
	return nil
}

// Predict returns the label of the closest training sample and its cosine
// distance.
func (n *Nearest) Predict(img *image.Gray) (int, float64, error) {
	if n.graph == nil {
		return -1, 0, ErrNotTrained
	}
	if got := img.Bounds().Size(); got != n.size {
		return -1, 0, fmt.Errorf("query image is %v, expected %v: %w", got, n.size, ErrDimensionMismatch)
	}

	query := flatten(img)
	neighbors := n.graph.Search(query, 1)
	if len(neighbors) == 0 {
		return -1, 0, ErrNotTrained
	}

	best := neighbors[0]
	return n.labels[best.Key], cosineDistance(query, best.Value), nil
}

// flatten turns a grayscale raster into a feature vector. Intensities are
// shifted by one so an all-black raster does not degenerate into a zero
// vector, which has no direction under cosine distance.
func flatten(img *image.Gray) []float32 {
	bounds := img.Bounds()
	vec := make([]float32, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			vec = append(vec, float32(img.GrayAt(x, y).Y)+1)
		}
	}
	return vec
}
