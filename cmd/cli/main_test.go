package main

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/slp2graph/internal/slippi/slptest"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ConvertAndVerify(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := t.TempDir()
	upload := filepath.Join(root, "uploads")
	require.NoError(t, os.MkdirAll(upload, 0o755))
	f, err := os.Create(filepath.Join(upload, "set.zip"))
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("game.slp")
	require.NoError(t, err)
	_, err = w.Write(slptest.Simple(2, 3).Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	importDir := filepath.Join(root, "import")
	args := []string{
		"-upload-dir", upload,
		"-scratch-dir", filepath.Join(root, "scratch"),
		"-import-dir", importDir,
		"-log-format", "text",
	}

	// --- Act ---
	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), out, args))
	verifyOut := &bytes.Buffer{}
	err = run(context.Background(), verifyOut, []string{"verify", importDir})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Parsed game count")
	require.FileExists(t, filepath.Join(importDir, "nodes", "games", "games.csv"))
	require.Contains(t, verifyOut.String(), "violations: 0")
}
