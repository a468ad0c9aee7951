package batch

import (
	"context"

	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/slippi"
)

// DecodeFunc decodes the bytes of one replay file.
type DecodeFunc func(data []byte) (*slippi.Game, error)

// Sink persists built games.
type Sink interface {
	WriteGame(g *builder.Graph) error
}

// Observer is told about each outcome of the run as it happens. An
// Observer error ends the run.
type Observer interface {
	GameWritten(ctx context.Context, w Written) error
	FileSkipped(ctx context.Context, s Skip) error
}

// Options configures a Driver.
type Options struct {
	UploadDir  string
	ScratchDir string
	// Workers is the number of concurrent decoders. Values below 1 mean 1.
	Workers int
	// Dedupe skips replays whose content was already converted in this run.
	Dedupe bool
	// DedupeCapacity sizes the duplicate filter.
	DedupeCapacity int
	// RemoveProcessed deletes each archive once it has been processed.
	RemoveProcessed bool
	// FirstIndex is the index given to the first game written.
	FirstIndex int
	Build      builder.Options
}

// Written describes a game that reached the Sink.
type Written struct {
	Index   int
	Archive string
	Entry   string
	// Digest is the hex SHA-256 of the replay file.
	Digest  string
	Frames  int
	Players int
}

// Skip is a file, or a whole archive when Entry is empty, that produced no
// output.
type Skip struct {
	Archive string
	Entry   string
	Err     error
}

// ArchiveSummary counts the outcomes of one archive.
type ArchiveSummary struct {
	Path    string
	Replays int
	Games   int
	Skipped int
}

// Result is the outcome of a run.
type Result struct {
	// Games is the number of games written.
	Games int
	// NextIndex is the index the next game would receive.
	NextIndex int
	Archives  []ArchiveSummary
	Skipped   []Skip
}
