package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Model is the effective configuration of a run.
type Model struct {
	Paths  Paths
	Output Output
	Run    Run
}

// Paths locates the batch's inputs and outputs.
type Paths struct {
	UploadDir  string
	ScratchDir string
	ImportDir  string
}

// Output selects what is written for each game.
type Output struct {
	Schema     string
	EdgePolicy string
}

// Run tunes batch execution.
type Run struct {
	Workers         int
	Dedupe          bool
	// DedupeCapacity is the number of replays the duplicate filter is
	// sized for. Beyond it the false-positive rate rises.
	DedupeCapacity  int
	RemoveProcessed bool
	LedgerPath      string
}

// DefaultDedupeCapacity sizes the duplicate filter when nothing else does.
const DefaultDedupeCapacity = 100000

// Defaults returns the built-in configuration.
func Defaults() Model {
	return Model{
		Paths: Paths{
			UploadDir:  "uploads",
			ScratchDir: "scratch",
			ImportDir:  "import",
		},
		Output: Output{
			Schema:     "basic",
			EdgePolicy: "legacy",
		},
		Run: Run{
			Workers:        1,
			DedupeCapacity: DefaultDedupeCapacity,
		},
	}
}

// Layer is a partial configuration. Nil fields are left unchanged by Apply.
type Layer struct {
	UploadDir  *string
	ScratchDir *string
	ImportDir  *string

	Schema     *string
	EdgePolicy *string

	Workers         *int
	Dedupe          *bool
	DedupeCapacity  *int
	RemoveProcessed *bool
	LedgerPath      *string
}

// Apply overwrites m with every setting l names.
func (m *Model) Apply(l *Layer) {
	if l == nil {
		return
	}
	set(&m.Paths.UploadDir, l.UploadDir)
	set(&m.Paths.ScratchDir, l.ScratchDir)
	set(&m.Paths.ImportDir, l.ImportDir)
	set(&m.Output.Schema, l.Schema)
	set(&m.Output.EdgePolicy, l.EdgePolicy)
	set(&m.Run.Workers, l.Workers)
	set(&m.Run.Dedupe, l.Dedupe)
	set(&m.Run.DedupeCapacity, l.DedupeCapacity)
	set(&m.Run.RemoveProcessed, l.RemoveProcessed)
	set(&m.Run.LedgerPath, l.LedgerPath)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "SLP2GRAPH_"

// FromEnv reads the SLP2GRAPH_* variables through lookup. Unset and empty
// variables leave the setting alone.
func FromEnv(lookup func(string) (string, bool)) (*Layer, error) {
	l := &Layer{}
	var errs []string
	str := func(name string) *string {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		return &v
	}
	integer := func(name string) *int {
		v := str(name)
		if v == nil {
			return nil
		}
		n, err := strconv.Atoi(*v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s%s: %q is not an integer", EnvPrefix, name, *v))
			return nil
		}
		return &n
	}
	boolean := func(name string) *bool {
		v := str(name)
		if v == nil {
			return nil
		}
		b, err := strconv.ParseBool(*v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s%s: %q is not a boolean", EnvPrefix, name, *v))
			return nil
		}
		return &b
	}

	l.UploadDir = str("UPLOAD_DIR")
	l.ScratchDir = str("SCRATCH_DIR")
	l.ImportDir = str("IMPORT_DIR")
	l.Schema = str("SCHEMA")
	l.EdgePolicy = str("EDGE_POLICY")
	l.Workers = integer("WORKERS")
	l.Dedupe = boolean("DEDUPE")
	l.DedupeCapacity = integer("DEDUPE_CAPACITY")
	l.RemoveProcessed = boolean("REMOVE_PROCESSED")
	l.LedgerPath = str("LEDGER")

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return l, nil
}
