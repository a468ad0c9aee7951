// Package archive opens uploaded zip archives and unpacks the replays they
// contain.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ReplayExt is the extension of replay entries. Other entries are ignored.
const ReplayExt = ".slp"

// ErrUnsafePath is returned for entries whose name would escape the
// extraction directory.
var ErrUnsafePath = errors.New("unsafe entry path")

// Archive is an open zip archive.
type Archive struct {
	zr *zip.ReadCloser
}

// Entry is one replay unpacked to disk.
type Entry struct {
	// Name is the entry name inside the archive.
	Name string
	// Path is where the entry was written.
	Path string
}

// Open opens and validates the archive at path.
func Open(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	return &Archive{zr: zr}, nil
}

// Extract unpacks every replay entry into dir. Each file is named
// <n>_<base>, n counting replay entries from 0, so entries sharing a name
// never overwrite each other. Entries are returned in archive order.
func (a *Archive) Extract(dir string) ([]Entry, error) {
	var out []Entry
	for _, f := range a.zr.File {
		if !isReplay(f) {
			continue
		}
		dest, err := target(dir, len(out), f.Name)
		if err != nil {
			return nil, err
		}
		if err := extractFile(f, dest); err != nil {
			return nil, err
		}
		out = append(out, Entry{Name: f.Name, Path: dest})
	}
	return out, nil
}

// Close releases the archive.
func (a *Archive) Close() error { return a.zr.Close() }

func isReplay(f *zip.File) bool {
	return !f.FileInfo().IsDir() && strings.EqualFold(path.Ext(f.Name), ReplayExt)
}

func target(dir string, n int, name string) (string, error) {
	clean := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return filepath.Join(dir, fmt.Sprintf("%d_%s", n, path.Base(clean))), nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", f.Name, err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return out.Close()
}
