package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type file struct {
	name string
	body string
}

func writeZip(t *testing.T, files ...file) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "upload.zip")
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range files {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

func TestArchive_Extract(t *testing.T) {
	p := writeZip(t,
		file{"b.slp", "second"},
		file{"readme.txt", "ignored"},
		file{"sets/a.SLP", "first"},
		file{"sets/", ""},
	)
	a, err := Open(p)
	require.NoError(t, err)
	defer a.Close()

	dir := t.TempDir()
	entries, err := a.Extract(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "b.slp", Path: filepath.Join(dir, "0_b.slp")}, entries[0])
	assert.Equal(t, Entry{Name: "sets/a.SLP", Path: filepath.Join(dir, "1_a.SLP")}, entries[1])

	body, err := os.ReadFile(entries[1].Path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(body))
	assert.NoFileExists(t, filepath.Join(dir, "readme.txt"))
}

func TestArchive_ExtractDuplicateNames(t *testing.T) {
	p := writeZip(t,
		file{"x.slp", "first"},
		file{"x.slp", "second"},
	)
	a, err := Open(p)
	require.NoError(t, err)
	defer a.Close()

	entries, err := a.Extract(t.TempDir())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].Path, entries[1].Path)

	for i, want := range []string{"first", "second"} {
		assert.Equal(t, "x.slp", entries[i].Name)
		body, err := os.ReadFile(entries[i].Path)
		require.NoError(t, err)
		assert.Equal(t, want, string(body))
	}
}

func TestOpen_Malformed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(p, []byte("not a zip"), 0o644))

	_, err := Open(p)
	assert.ErrorContains(t, err, "failed to open archive")
}

func TestArchive_ExtractRejectsEscapes(t *testing.T) {
	for _, name := range []string{"../evil.slp", "a/../../evil.slp", "/abs.slp", `..\evil.slp`} {
		t.Run(name, func(t *testing.T) {
			a, err := Open(writeZip(t, file{name, "x"}))
			if errors.Is(err, zip.ErrInsecurePath) {
				return
			}
			require.NoError(t, err)
			defer a.Close()

			_, err = a.Extract(t.TempDir())
			assert.True(t, errors.Is(err, ErrUnsafePath), "got %v", err)
		})
	}
}
