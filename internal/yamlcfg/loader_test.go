package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/config"
)

func load(t *testing.T, body string) (*config.Layer, error) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return Loader{}.Load(context.Background(), p)
}

func TestLoad(t *testing.T) {
	l, err := load(t, "paths:\n  import_dir: /out\nrun:\n  workers: 3\n  remove_processed: true\n  dedupe_capacity: 500\n")
	require.NoError(t, err)

	m := config.Defaults()
	m.Apply(l)
	assert.Equal(t, "/out", m.Paths.ImportDir)
	assert.Equal(t, "uploads", m.Paths.UploadDir)
	assert.Equal(t, 3, m.Run.Workers)
	assert.True(t, m.Run.RemoveProcessed)
	assert.Equal(t, 500, m.Run.DedupeCapacity)
}

func TestLoad_Empty(t *testing.T) {
	l, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, &config.Layer{}, l)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := load(t, "run:\n  threads: 2\n")
	assert.ErrorContains(t, err, "parse job file")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Loader{}.Load(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorContains(t, err, "read job file")
}
