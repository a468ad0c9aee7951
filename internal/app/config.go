package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/config"
)

// Mode selects what Run does.
type Mode int

const (
	ModeConvert Mode = iota
	ModeVerify
	ModePrintConfig
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Mode Mode
	Job  config.Model
	// VerifyDir is the import directory checked in ModeVerify.
	VerifyDir string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Mode == ModeVerify {
		if cfg.VerifyDir == "" {
			return nil, errors.New("verify requires an import directory")
		}
		return &cfg, nil
	}

	p := cfg.Job.Paths
	if p.UploadDir == "" || p.ScratchDir == "" || p.ImportDir == "" {
		return nil, errors.New("upload, scratch and import directories are required")
	}
	// The scratch directory is emptied after every archive.
	if within(p.UploadDir, p.ScratchDir) || within(p.ImportDir, p.ScratchDir) {
		return nil, errors.New("scratch directory must not be or contain the upload or import directory")
	}
	if within(p.ScratchDir, p.UploadDir) {
		return nil, errors.New("scratch directory must not be inside the upload directory")
	}
	if _, err := builder.ParseSchema(cfg.Job.Output.Schema); err != nil {
		return nil, err
	}
	if _, err := builder.ParseEdgePolicy(cfg.Job.Output.EdgePolicy); err != nil {
		return nil, err
	}
	if cfg.Job.Run.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Job.Run.Workers)
	}
	if cfg.Job.Run.Dedupe && cfg.Job.Run.DedupeCapacity < 1 {
		return nil, fmt.Errorf("dedupe capacity must be at least 1, got %d", cfg.Job.Run.DedupeCapacity)
	}
	return &cfg, nil
}

// within reports whether path is dir or lies below it. Relative paths are
// resolved against the working directory.
func within(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
