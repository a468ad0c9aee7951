// Package yamlcfg loads YAML job files.
//
//	paths:
//	  upload_dir: /data/uploads
//	output:
//	  schema: extended
//	run:
//	  workers: 4
package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/slp2graph/internal/config"
	"github.com/vk/slp2graph/internal/ctxlog"
)

type jobFile struct {
	Paths struct {
		UploadDir  *string `yaml:"upload_dir"`
		ScratchDir *string `yaml:"scratch_dir"`
		ImportDir  *string `yaml:"import_dir"`
	} `yaml:"paths"`
	Output struct {
		Schema     *string `yaml:"schema"`
		EdgePolicy *string `yaml:"edge_policy"`
	} `yaml:"output"`
	Run struct {
		Workers         *int    `yaml:"workers"`
		Dedupe          *bool   `yaml:"dedupe"`
		DedupeCapacity  *int    `yaml:"dedupe_capacity"`
		RemoveProcessed *bool   `yaml:"remove_processed"`
		LedgerPath      *string `yaml:"ledger"`
	} `yaml:"run"`
}

// Loader implements config.Loader for YAML.
type Loader struct{}

var _ config.Loader = Loader{}

// Load reads the job file at path. Unknown keys are an error.
func (Loader) Load(ctx context.Context, path string) (*config.Layer, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read job file %s: %w", path, err)
	}
	defer f.Close()

	var job jobFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&job); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse job file %s: %w", path, err)
	}
	return &config.Layer{
		UploadDir:       job.Paths.UploadDir,
		ScratchDir:      job.Paths.ScratchDir,
		ImportDir:       job.Paths.ImportDir,
		Schema:          job.Output.Schema,
		EdgePolicy:      job.Output.EdgePolicy,
		Workers:         job.Run.Workers,
		Dedupe:          job.Run.Dedupe,
		DedupeCapacity:  job.Run.DedupeCapacity,
		RemoveProcessed: job.Run.RemoveProcessed,
		LedgerPath:      job.Run.LedgerPath,
	}, nil
}
