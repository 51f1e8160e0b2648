// Package results renders recognition output as JSON: one array of face
// decisions per processed image, and one array of portrait file paths per
// name query.
package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davidq/face-corpus/internal/pipeline"
)

type position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type faceResult struct {
	Prediction string     `json:"prediction"`
	Confidence float64    `json:"confidence"`
	Position   position   `json:"position"`
	Size       dimensions `json:"size"`
}

// Faces renders decision records as a JSON array, one object per detected
// face. Zero records render as the literal [].
func Faces(records []pipeline.Record) ([]byte, error) {
	out := make([]faceResult, 0, len(records))
	for _, r := range records {
		out = append(out, faceResult{
			Prediction: r.Name,
			Confidence: r.Confidence,
			Position:   position{X: r.Rect.Min.X, Y: r.Rect.Min.Y},
			Size:       dimensions{Width: r.Rect.Dx(), Height: r.Rect.Dy()},
		})
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize face results: %w", err)
	}
	return data, nil
}

// Paths renders file paths as a JSON string array; nil renders as [].
func Paths(paths []string) ([]byte, error) {
	if paths == nil {
		paths = []string{}
	}

	data, err := json.Marshal(paths)
	if err != nil {
		return nil, fmt.Errorf("cannot serialize paths: %w", err)
	}
	return data, nil
}

// WriteFile persists a rendered result with a trailing newline. Callers
// treat a failure on the primary output file as fatal.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("cannot write result file %s: %w", path, err)
	}
	return nil
}
