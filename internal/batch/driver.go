package batch

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/slp2graph/internal/archive"
	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/ctxlog"
	"github.com/vk/slp2graph/internal/fsutil"
	"github.com/vk/slp2graph/internal/slippi"
)

// Driver runs a batch. A Driver is single-use state around one run: the
// game counter it owns starts at Options.FirstIndex.
type Driver struct {
	opts      Options
	sink      Sink
	decode    DecodeFunc
	observers []Observer

	next   int
	seen   *seenSet
	result Result
}

// New creates a driver writing to sink. A nil decode uses slippi.Decode.
func New(opts Options, sink Sink, decode DecodeFunc, observers ...Observer) *Driver {
	if decode == nil {
		decode = slippi.Decode
	}
	d := &Driver{
		opts:      opts,
		sink:      sink,
		decode:    decode,
		observers: observers,
		next:      opts.FirstIndex,
	}
	if opts.Dedupe {
		d.seen = newSeenSet(opts.DedupeCapacity)
	}
	return d
}

// Run processes every archive in the upload directory. The returned Result
// is valid even when err is not nil and covers the work done before the
// failure.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	archives, err := fsutil.FindFilesByExtension(d.opts.UploadDir, ".zip")
	if err != nil {
		return d.finish(), fmt.Errorf("failed to scan upload directory %s: %w", d.opts.UploadDir, err)
	}
	logger.Info("Discovered archives.", "count", len(archives), "upload_dir", d.opts.UploadDir)

	for _, path := range archives {
		if err := ctx.Err(); err != nil {
			return d.finish(), err
		}
		if err := d.runArchive(ctxlog.With(ctx, "archive", path), path); err != nil {
			return d.finish(), err
		}
	}

	res := d.finish()
	logger.Info("Batch complete.", "games", res.Games, "skipped", len(res.Skipped), "archives", len(res.Archives))
	return res, nil
}

func (d *Driver) finish() *Result {
	r := d.result
	r.NextIndex = d.next
	return &r
}

// runArchive processes one archive. Only fatal errors are returned. A
// malformed archive is left in place even when processed archives are
// removed.
func (d *Driver) runArchive(ctx context.Context, path string) (err error) {
	logger := ctxlog.FromContext(ctx)
	summary := ArchiveSummary{Path: path}
	extracted := false
	defer func() {
		d.result.Archives = append(d.result.Archives, summary)
		if cerr := fsutil.ClearDir(d.opts.ScratchDir); cerr != nil && err == nil {
			err = fmt.Errorf("failed to clear scratch directory: %w", cerr)
		}
		if err == nil && extracted && d.opts.RemoveProcessed {
			if rerr := os.Remove(path); rerr != nil {
				logger.Warn("Failed to remove processed archive.", "error", rerr)
			}
		}
	}()

	if err := fsutil.ClearDir(d.opts.ScratchDir); err != nil {
		return fmt.Errorf("failed to clear scratch directory: %w", err)
	}

	a, err := archive.Open(path)
	if err != nil {
		return d.skip(ctx, Skip{Archive: path, Err: &ArchiveError{Archive: path, Err: err}})
	}
	entries, err := a.Extract(d.opts.ScratchDir)
	a.Close()
	if err != nil {
		return d.skip(ctx, Skip{Archive: path, Err: &ArchiveError{Archive: path, Err: err}})
	}
	extracted = true
	summary.Replays = len(entries)
	logger.Debug("Extracted replays.", "count", len(entries))

	stream := d.decodeEntries(ctx, entries)
	defer stream.close()

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, ok := stream.next()
		if !ok {
			return ctx.Err()
		}
		written, err := d.convert(ctxlog.With(ctx, "file", entry.Name), path, entry, res)
		if err != nil {
			return err
		}
		if written {
			summary.Games++
		} else {
			summary.Skipped++
		}
	}
	logger.Info("Archive processed.", "replays", summary.Replays, "games", summary.Games, "skipped", summary.Skipped)
	return nil
}

// convert assigns the next index to one decoded replay and writes it.
// written is false when the replay was skipped.
func (d *Driver) convert(ctx context.Context, path string, entry archive.Entry, res decoded) (written bool, err error) {
	logger := ctxlog.FromContext(ctx)

	if res.err != nil {
		if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
			return false, res.err
		}
		return false, d.skip(ctx, Skip{Archive: path, Entry: entry.Name, Err: &DecodeError{Archive: path, Entry: entry.Name, Err: res.err}})
	}

	digest := hex.EncodeToString(res.digest[:])
	if d.seen != nil && d.seen.seen(res.digest) {
		return false, d.skip(ctx, Skip{Archive: path, Entry: entry.Name, Err: &DuplicateError{
			Archive: path,
			Entry:   entry.Name,
			Digest:  digest,
		}})
	}

	logMetadata(logger, res.game)

	g := d.next
	graph, err := builder.Build(ctx, res.game, g, d.opts.Build)
	if err != nil {
		return false, d.skip(ctx, Skip{Archive: path, Entry: entry.Name, Err: err})
	}
	if err := d.sink.WriteGame(graph); err != nil {
		return false, &WriteError{Game: g, Err: err}
	}
	d.next++
	d.result.Games++
	if d.seen != nil {
		d.seen.add(res.digest)
	}
	logger.Info("Parsed game count", "count", d.result.Games, "game_index", g)

	w := Written{
		Index:   g,
		Archive: path,
		Entry:   entry.Name,
		Digest:  digest,
		Frames:  len(res.game.Frames),
		Players: len(graph.Players),
	}
	for _, o := range d.observers {
		if err := o.GameWritten(ctx, w); err != nil {
			return true, fmt.Errorf("recording game %d: %w", g, err)
		}
	}
	return true, nil
}

// skip records a non-fatal failure. Only an Observer error is returned.
func (d *Driver) skip(ctx context.Context, s Skip) error {
	ctxlog.FromContext(ctx).Warn("Skipping.", "error", s.Err)
	d.result.Skipped = append(d.result.Skipped, s)
	for _, o := range d.observers {
		if err := o.FileSkipped(ctx, s); err != nil {
			return fmt.Errorf("recording skip: %w", err)
		}
	}
	return nil
}

func logMetadata(logger *slog.Logger, game *slippi.Game) {
	md := game.Metadata
	if md == nil {
		return
	}
	attrs := []any{"version", game.Start.Version.String()}
	if md.StartAt != "" {
		attrs = append(attrs, "start_at", md.StartAt)
	}
	if md.PlayedOn != "" {
		attrs = append(attrs, "played_on", md.PlayedOn)
	}
	if md.LastFrame != nil {
		attrs = append(attrs, "last_frame", *md.LastFrame)
	}
	logger.Debug("Replay metadata.", attrs...)
}
