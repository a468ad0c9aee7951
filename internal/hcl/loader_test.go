package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/config"
)

func writeJob(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "job.hcl")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func testLoader() *Loader {
	return &Loader{Environ: func() []string { return []string{"DATA=/srv/data", "NOT-AN-IDENT=x"} }}
}

func TestLoader_Load(t *testing.T) {
	p := writeJob(t, `
paths {
  upload_dir = "${env.DATA}/uploads"
}

output {
  edge_policy = "complete"
}

run {
  workers = 4
  dedupe  = true
}
`)
	l, err := testLoader().Load(context.Background(), p)
	require.NoError(t, err)

	m := config.Defaults()
	m.Apply(l)
	assert.Equal(t, "/srv/data/uploads", m.Paths.UploadDir)
	assert.Equal(t, "import", m.Paths.ImportDir)
	assert.Equal(t, "complete", m.Output.EdgePolicy)
	assert.Equal(t, "basic", m.Output.Schema)
	assert.Equal(t, 4, m.Run.Workers)
	assert.True(t, m.Run.Dedupe)
	assert.False(t, m.Run.RemoveProcessed)
	assert.Equal(t, config.DefaultDedupeCapacity, m.Run.DedupeCapacity)
}

func TestLoader_EnvSkipsInvalidIdentifiers(t *testing.T) {
	env := testLoader().evalContext().Variables["env"]
	assert.True(t, env.Type().HasAttribute("DATA"))
	assert.False(t, env.Type().HasAttribute("NOT-AN-IDENT"))
}

func TestLoader_Empty(t *testing.T) {
	l, err := testLoader().Load(context.Background(), writeJob(t, ""))
	require.NoError(t, err)
	assert.Equal(t, &config.Layer{}, l)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "paths {", "failed to parse HCL file"},
		{"unknown attribute", "run {\n  threads = 2\n}\n", "failed to decode HCL file"},
		{"unknown block", "input {}\n", "failed to decode HCL file"},
		{"wrong type", "run {\n  workers = \"many\"\n}\n", "failed to decode HCL file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testLoader().Load(context.Background(), writeJob(t, tc.body))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	want := config.Defaults()
	want.Paths.UploadDir = "/in"
	want.Output.Schema = "extended"
	want.Run.Workers = 6
	want.Run.LedgerPath = "runs.db"

	out := Render(want)
	assert.Contains(t, string(out), `schema      = "extended"`)

	l, err := testLoader().Load(context.Background(), writeJob(t, string(out)))
	require.NoError(t, err)
	got := config.Model{}
	got.Apply(l)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
