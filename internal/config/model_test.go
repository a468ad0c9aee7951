package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestModel_Apply(t *testing.T) {
	m := Defaults()
	m.Apply(&Layer{ImportDir: ptr("out"), Workers: ptr(4)})
	m.Apply(&Layer{Workers: ptr(8), Dedupe: ptr(true)})
	m.Apply(nil)

	want := Defaults()
	want.Paths.ImportDir = "out"
	want.Run.Workers = 8
	want.Run.Dedupe = true
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"SLP2GRAPH_UPLOAD_DIR":       "/data/in",
		"SLP2GRAPH_WORKERS":          "3",
		"SLP2GRAPH_REMOVE_PROCESSED": "true",
		"SLP2GRAPH_DEDUPE_CAPACITY":  "5000",
		"SLP2GRAPH_SCHEMA":           "",
		"OTHER":                      "x",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	l, err := FromEnv(lookup)
	require.NoError(t, err)
	assert.Equal(t, &Layer{
		UploadDir:       ptr("/data/in"),
		Workers:         ptr(3),
		DedupeCapacity:  ptr(5000),
		RemoveProcessed: ptr(true),
	}, l)
}

func TestDefaults_KeepArchives(t *testing.T) {
	assert.False(t, Defaults().Run.RemoveProcessed)
}

func TestFromEnv_Invalid(t *testing.T) {
	env := map[string]string{"SLP2GRAPH_WORKERS": "many", "SLP2GRAPH_DEDUPE": "maybe"}
	_, err := FromEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `SLP2GRAPH_WORKERS: "many" is not an integer`)
	assert.Contains(t, err.Error(), `SLP2GRAPH_DEDUPE: "maybe" is not a boolean`)
}
