// Package tomlcfg loads TOML job files.
//
//	[paths]
//	upload_dir = "/data/uploads"
//
//	[run]
//	workers = 4
package tomlcfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vk/slp2graph/internal/config"
	"github.com/vk/slp2graph/internal/ctxlog"
)

type jobFile struct {
	Paths struct {
		UploadDir  *string `toml:"upload_dir"`
		ScratchDir *string `toml:"scratch_dir"`
		ImportDir  *string `toml:"import_dir"`
	} `toml:"paths"`
	Output struct {
		Schema     *string `toml:"schema"`
		EdgePolicy *string `toml:"edge_policy"`
	} `toml:"output"`
	Run struct {
		Workers         *int    `toml:"workers"`
		Dedupe          *bool   `toml:"dedupe"`
		DedupeCapacity  *int    `toml:"dedupe_capacity"`
		RemoveProcessed *bool   `toml:"remove_processed"`
		LedgerPath      *string `toml:"ledger"`
	} `toml:"run"`
}

// Loader implements config.Loader for TOML.
type Loader struct{}

var _ config.Loader = Loader{}

// Load reads the job file at path. Unknown keys are an error.
func (Loader) Load(ctx context.Context, path string) (*config.Layer, error) {
	ctxlog.FromContext(ctx).Debug("TOML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file %s: %w", path, err)
	}
	var job jobFile
	md, err := toml.Decode(string(data), &job)
	if err != nil {
		return nil, fmt.Errorf("parse job file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse job file %s: unknown keys %s", path, strings.Join(keys, ", "))
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
