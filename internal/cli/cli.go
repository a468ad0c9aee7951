package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/vk/slp2graph/internal/app"
	"github.com/vk/slp2graph/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Settings are resolved from, in increasing precedence, built-in defaults,
// the environment (including an optional .env file), the job file given
// with -config, and explicit flags.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	mode := app.ModeConvert
	if len(args) > 0 && args[0] == "verify" {
		mode = app.ModeVerify
		args = args[1:]
	}

	flagSet := flag.NewFlagSet("slp2graph", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
slp2graph - Convert Slippi replay archives into graph database import files.

Usage:
  slp2graph [options]
  slp2graph verify [options] IMPORT_DIR

Every .zip archive in the upload directory is unpacked, its .slp replays are
decoded, and node and relationship files are written to the import directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	var f flags
	f.register(flagSet)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg := app.Config{
		Mode:            mode,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: f.healthcheckPort,
	}

	switch {
	case mode == app.ModeVerify:
		if flagSet.NArg() != 1 {
			return nil, false, usageError("verify takes exactly one import directory")
		}
		cfg.VerifyDir = flagSet.Arg(0)
	case flagSet.NArg() > 0:
		return nil, false, usageError("unexpected argument %q", flagSet.Arg(0))
	default:
		job, err := resolve(flagSet, &f)
		if err != nil {
			return nil, false, err
		}
		cfg.Job = job
		if f.printConfig {
			cfg.Mode = app.ModePrintConfig
		}
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%v", err)
	}
	slog.Debug("CLI parser finished successfully.", "mode", appConfig.Mode)
	return appConfig, false, nil
}

// resolve layers defaults, environment, job file and flags into a model.
func resolve(flagSet *flag.FlagSet, f *flags) (config.Model, error) {
	ctx := context.Background()
	m := config.Defaults()

	lookup, err := envLookup(f.envFile, flagSet)
	if err != nil {
		return m, err
	}
	envLayer, err := config.FromEnv(lookup)
	if err != nil {
		return m, usageError("%v", err)
	}
	m.Apply(envLayer)

	jobPath := f.configPath
	if jobPath == "" {
		if v, ok := lookup(config.EnvPrefix + "CONFIG"); ok {
			jobPath = v
		}
	}
	if jobPath != "" {
		loader, err := loaderFor(jobPath)
		if err != nil {
			return m, usageError("%v", err)
		}
		jobLayer, err := loader.Load(ctx, jobPath)
		if err != nil {
			return m, &ExitError{Code: 1, Message: err.Error()}
		}
		m.Apply(jobLayer)
		slog.Debug("Job file applied.", "path", jobPath)
	}

	m.Apply(f.layer(flagSet))
	return m, nil
}

// envLookup prefers the process environment over the .env file. A missing
// default .env file is not an error; a missing explicit one is.
func envLookup(path string, flagSet *flag.FlagSet) (func(string) (string, bool), error) {
	fileVars, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || isSet(flagSet, "env-file") {
			return nil, usageError("failed to read env file %s: %v", path, err)
		}
		fileVars = nil
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

func isSet(flagSet *flag.FlagSet, name string) bool {
	set := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
