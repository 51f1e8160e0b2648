package corpus

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/davidq/face-corpus/internal/catalog"
	"github.com/davidq/face-corpus/internal/constants"
)

// Store persists face samples and portraits under a database root.
//
// Artifact names are <unixTimestamp>_<sequence>.jpg; the sequence counter is
// shared by faces and portraits and increases monotonically for the store's
// lifetime, so two saves within the same wall-clock second never collide.
// The corpus and store are owned by the single processing loop; the counter
// is not safe for concurrent writers.
type Store struct {
	Root string

	seq uint64
}

// NewStore returns a store rooted at root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// EnsureLayout creates the faces and portraits directories for a person,
// so collection can start against a fresh database root.
func (s *Store) EnsureLayout(name string) error {
	for _, dir := range []string{
		filepath.Join(s.Root, constants.FacesDir, name),
		filepath.Join(s.Root, constants.PortraitsDir, name),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	return nil
}

// AppendFace normalizes img to the corpus standard size, appends it to the
// corpus under name's label (minting the next free label for an unseen
// name), and persists the normalized raster. The corpus is not mutated when
// the disk write fails. Returns the label and the written file path.
func (s *Store) AppendFace(c *Corpus, img image.Image, name string) (int, string, error) {
	size := image.Pt(constants.FaceSize, constants.FaceSize)
	if std, err := c.StandardSize(); err == nil {
		size = std
	}
	face := Normalize(img, size)

	path, err := s.writeImage(filepath.Join(s.Root, constants.FacesDir, name), face)
	if err != nil {
		return 0, "", fmt.Errorf("cannot persist face sample: %w", err)
	}

	label := c.EnsureLabel(name)
	c.add(face, label)
	return label, path, nil
}

// SavePortrait resizes img to the portrait size and persists it under the
// person's portraits directory. It does not touch the recognition corpus.
func (s *Store) SavePortrait(name string, img image.Image) (string, error) {
	portrait := ResizeColor(img, image.Pt(constants.PortraitSize, constants.PortraitSize))

	path, err := s.writeImage(filepath.Join(s.Root, constants.PortraitsDir, name), portrait)
	if err != nil {
		return "", fmt.Errorf("cannot persist portrait: %w", err)
	}
	return path, nil
}

// PortraitPaths returns the portrait file paths stored for a person name.
// A missing portraits tree or an unknown name yields an empty, non-nil
// slice.
func (s *Store) PortraitPaths(name string) ([]string, error) {
	paths := []string{}

	portraitsPath := filepath.Join(s.Root, constants.PortraitsDir)
	entries, err := catalog.List(portraitsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return paths, nil
	}
	if err != nil {
		return nil, err
	}

	found := false
	for _, entry := range entries {
		if entry.Name == name && entry.Kind == catalog.Dir {
			found = true
			break
		}
	}
	if !found {
		return paths, nil
	}

	personPath := filepath.Join(portraitsPath, name)
	files, err := catalog.List(personPath)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.Kind == catalog.File {
			paths = append(paths, filepath.Join(personPath, file.Name))
		}
	}
	return paths, nil
}

// writeImage persists img under dir with a collision-free artifact name.
func (s *Store) writeImage(dir string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	s.seq++
	path := filepath.Join(dir, fmt.Sprintf("%d_%d.jpg", time.Now().Unix(), s.seq))
	if err := encodeJPEG(path, img); err != nil {
		return "", err
	}
	return path, nil
}
