package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/slp2graph/internal/batch"
	"github.com/vk/slp2graph/internal/builder"
	"github.com/vk/slp2graph/internal/ctxlog"
	"github.com/vk/slp2graph/internal/hcl"
	"github.com/vk/slp2graph/internal/ledger"
	"github.com/vk/slp2graph/internal/nodeid"
	"github.com/vk/slp2graph/internal/report"
	"github.com/vk/slp2graph/internal/storage"
	"github.com/vk/slp2graph/internal/verify"
)

// Run executes the main application logic for the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	switch a.config.Mode {
	case ModePrintConfig:
		_, err := a.outW.Write(hcl.Render(a.config.Job))
		return err
	case ModeVerify:
		return a.verify(ctx, a.config.VerifyDir)
	}

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}
	return a.convert(ctx)
}

// convert runs one batch from the upload directory into the import
// directory and writes the run report.
func (a *App) convert(ctx context.Context) (err error) {
	job := a.config.Job
	logger := ctxlog.FromContext(ctx)

	schema, err := builder.ParseSchema(job.Output.Schema)
	if err != nil {
		return err
	}
	policy, err := builder.ParseEdgePolicy(job.Output.EdgePolicy)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(job.Paths.ImportDir, report.FileName)); err == nil {
		logger.Warn("Import directory already holds a run; game ids restart at 0 and shared files are appended to.", "import_dir", job.Paths.ImportDir)
	}

	store, err := storage.Open(job.Paths.ImportDir, schema == builder.SchemaExtended)
	if err != nil {
		return fmt.Errorf("failed to open import directory: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close import files: %w", cerr)
		}
	}()

	var observers []batch.Observer
	var runLedger *ledger.Ledger
	if job.Run.LedgerPath != "" {
		runLedger, err = ledger.Open(ctx, job.Run.LedgerPath)
		if err != nil {
			return err
		}
		defer runLedger.Close()
		observers = append(observers, runLedger)
		logger.Debug("Ledger opened.", "path", job.Run.LedgerPath, "run_id", runLedger.RunID())
	}

	driver := batch.New(batch.Options{
		UploadDir:       job.Paths.UploadDir,
		ScratchDir:      job.Paths.ScratchDir,
		Workers:         job.Run.Workers,
		Dedupe:          job.Run.Dedupe,
		DedupeCapacity:  job.Run.DedupeCapacity,
		RemoveProcessed: job.Run.RemoveProcessed,
		Build:           builder.Options{Schema: schema, EdgePolicy: policy},
	}, store, nil, observers...)

	started := a.now()
	logger.Info("Starting batch.", "upload_dir", job.Paths.UploadDir, "import_dir", job.Paths.ImportDir, "workers", job.Run.Workers)
	res, runErr := driver.Run(ctx)

	if runLedger != nil {
		if err := runLedger.Finish(ctx, res.Games); err != nil {
			logger.Error("Failed to finish ledger run.", "error", err)
		}
	}
	if err := report.Write(job.Paths.ImportDir, report.New(res, started, a.now(), runErr)); err != nil {
		return errors.Join(runErr, err)
	}
	if runErr != nil {
		return fmt.Errorf("batch failed: %w", runErr)
	}
	logger.Info("Batch finished.", "games", res.Games, "skipped", len(res.Skipped))
	return nil
}

// verify checks an import directory and prints a summary. Violations are
// reported as an error.
func (a *App) verify(ctx context.Context, dir string) error {
	sum, err := verify.Dir(ctx, dir)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("nodes:")
	for _, k := range []nodeid.Kind{nodeid.KindGame, nodeid.KindPlayer, nodeid.KindPort, nodeid.KindFrame} {
		if n := sum.Nodes[k]; n > 0 {
			fmt.Fprintf(&b, " %s=%d", k, n)
		}
	}
	b.WriteString("\nedges:")
	types := make([]string, 0, len(sum.Edges))
	for t := range sum.Edges {
		types = append(types, t)
	}
	slices.Sort(types)
	for _, t := range types {
		fmt.Fprintf(&b, " %s=%d", t, sum.Edges[t])
	}
	fmt.Fprintf(&b, "\nviolations: %d\n", sum.Total)
	for _, v := range sum.Violations {
		fmt.Fprintf(&b, "  %s\n", v)
	}
	if _, err := io.WriteString(a.outW, b.String()); err != nil {
		return err
	}

	if !sum.OK() {
		return fmt.Errorf("%d violations found in %s", sum.Total, dir)
	}
	return nil
}
