package corpus

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/davidq/face-corpus/internal/catalog"
	"github.com/davidq/face-corpus/internal/constants"
)

// Loader scans the two-level faces directory of a database root and builds
// an in-memory corpus from it.
type Loader struct {
	// Root is the database root; samples are read from Root/faces.
	Root string

	// Progress, when set, is called after each person directory has been
	// loaded.
	Progress func(name string, done, total int)
}

// Load scans Root/faces and returns the corpus. Each subdirectory is one
// person; subdirectories are assigned labels 0..n-1 in scan order, which is
// only stable within this load. Every file inside a person directory is
// decoded, grayscaled and resized to the standard recognition size. An
// unreadable directory or an undecodable file aborts the whole load; a
// person directory with zero files loads fine and contributes only a name.
func (l *Loader) Load() (*Corpus, error) {
	facesPath := filepath.Join(l.Root, constants.FacesDir)

	entries, err := catalog.List(facesPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read face database directory: %w", err)
	}

	var people []string
	for _, entry := range entries {
		if entry.Kind == catalog.Dir {
			people = append(people, entry.Name)
		}
	}

	c := New()
	size := image.Pt(constants.FaceSize, constants.FaceSize)

	for i, name := range people {
		personPath := filepath.Join(facesPath, name)

		files, err := catalog.List(personPath)
		if err != nil {
			return nil, fmt.Errorf("cannot read face image directory: %w", err)
		}

		label := i
		c.bind(name, label)

		for _, file := range files {
			if file.Kind != catalog.File {
				continue
			}

			img, err := decodeImage(filepath.Join(personPath, file.Name))
			if err != nil {
				return nil, fmt.Errorf("cannot load face sample: %w", err)
			}
			c.add(Normalize(img, size), label)
		}

		if l.Progress != nil {
			l.Progress(name, i+1, len(people))
		}
	}

	return c, nil
}
