// Package catalog enumerates directory entries and classifies them as
// files, directories or other items. Hidden entries are never reported.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a directory entry.
type Kind int

const (
	// Other covers sockets, devices and anything that is neither a
	// regular file nor a directory
	Other Kind = iota
	// File is a regular file
	File
	// Dir is a directory
	Dir
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Dir:
		return "dir"
	default:
		return "other"
	}
}

// Entry is a single named item of a directory listing.
type Entry struct {
	Name string
	Kind Kind
}

// List enumerates the entries of path, skipping hidden entries (names
// starting with a dot). Symlinks are resolved, so a link to a directory is
// reported as Dir. Any failure - an unreadable directory or an entry whose
// status cannot be determined, such as a broken symlink - returns an error
// and no partial result.
//
// Callers must treat the result as an unordered set: os.ReadDir happens to
// sort by name, but nothing downstream may rely on it, and label assignment
// derived from this listing is only stable within a single load.
func List(path string) ([]Entry, error) {
	items, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open directory %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(item.Name(), ".") {
			continue
		}

		// Stat instead of item.Info so symlinks report the target's
		// kind, matching what a traversal of the corpus would see.
		info, err := os.Stat(filepath.Join(path, item.Name()))
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", filepath.Join(path, item.Name()), err)
		}

		kind := Other
		switch {
		case info.Mode().IsRegular():
			kind = File
		case info.IsDir():
			kind = Dir
		}

		entries = append(entries, Entry{Name: item.Name(), Kind: kind})
	}

	return entries, nil
}
