package tomlcfg

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
	p := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return Loader{}.Load(context.Background(), p)
}

func TestLoad(t *testing.T) {
	l, err := load(t, "[output]\nschema = \"extended\"\n\n[run]\ndedupe = true\nledger = \"runs.db\"\n")
	require.NoError(t, err)

	m := config.Defaults()
	m.Apply(l)
	assert.Equal(t, "extended", m.Output.Schema)
	assert.Equal(t, "legacy", m.Output.EdgePolicy)
	assert.True(t, m.Run.Dedupe)
	assert.Equal(t, "runs.db", m.Run.LedgerPath)
}

func TestLoad_UnknownKey(t *testing.T) {
	_, err := load(t, "[run]\nthreads = 2\n")
	assert.ErrorContains(t, err, "unknown keys run.threads")
}

func TestLoad_Syntax(t *testing.T) {
	_, err := load(t, "[run\n")
	assert.ErrorContains(t, err, "parse job file")
}
