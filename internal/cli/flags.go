package cli

import (
	"flag"

	"github.com/vk/slp2graph/internal/config"
)

// flags holds the raw flag values. Only flags given on the command line
// override other configuration sources.
type flags struct {
	configPath string
	envFile    string

	uploadDir  string
	scratchDir string
	importDir  string

	schema     string
	edgePolicy string

	workers         int
	dedupe          bool
	dedupeCapacity  int
	removeProcessed bool
	ledger          string

	logFormat       string
	logLevel        string
	healthcheckPort int
	printConfig     bool
}

func (f *flags) register(fs *flag.FlagSet) {
	d := config.Defaults()

	fs.StringVar(&f.configPath, "config", "", "Path to a job file (.hcl, .yaml, .yml or .toml).")
	fs.StringVar(&f.configPath, "c", "", "Path to a job file (shorthand).")
	fs.StringVar(&f.envFile, "env-file", ".env", "File of KEY=value defaults for SLP2GRAPH_* variables.")

	fs.StringVar(&f.uploadDir, "upload-dir", d.Paths.UploadDir, "Directory scanned for .zip archives.")
	fs.StringVar(&f.scratchDir, "scratch-dir", d.Paths.ScratchDir, "Directory replays are extracted into. Cleared after every archive.")
	fs.StringVar(&f.importDir, "import-dir", d.Paths.ImportDir, "Directory the import files are written to.")

	fs.StringVar(&f.schema, "schema", d.Output.Schema, "Output schema. Options: 'basic' or 'extended'.")
	fs.StringVar(&f.edgePolicy, "edge-policy", d.Output.EdgePolicy, "Which adjacent port pairs are linked. Options: 'legacy' or 'complete'.")

	fs.IntVar(&f.workers, "workers", d.Run.Workers, "Number of concurrent replay decoders.")
	fs.BoolVar(&f.dedupe, "dedupe", d.Run.Dedupe, "Skip replays whose content was already converted in this run.")
	fs.IntVar(&f.dedupeCapacity, "dedupe-capacity", d.Run.DedupeCapacity, "Number of replays the duplicate filter is sized for.")
	fs.BoolVar(&f.removeProcessed, "remove-processed", d.Run.RemoveProcessed, "Delete each archive after it has been processed.")
	fs.StringVar(&f.ledger, "ledger", d.Run.LedgerPath, "SQLite database recording every run. Empty disables it.")

	fs.StringVar(&f.logFormat, "log-format", "json", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.IntVar(&f.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	fs.BoolVar(&f.printConfig, "print-config", false, "Print the effective configuration as HCL and exit.")
}

// layer returns the settings of the flags that were given explicitly.
func (f *flags) layer(fs *flag.FlagSet) *config.Layer {
	l := &config.Layer{}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "upload-dir":
			l.UploadDir = &f.uploadDir
		case "scratch-dir":
			l.ScratchDir = &f.scratchDir
		case "import-dir":
			l.ImportDir = &f.importDir
		case "schema":
			l.Schema = &f.schema
		case "edge-policy":
			l.EdgePolicy = &f.edgePolicy
		case "workers":
			l.Workers = &f.workers
		case "dedupe":
			l.Dedupe = &f.dedupe
		case "dedupe-capacity":
			l.DedupeCapacity = &f.dedupeCapacity
		case "remove-processed":
			l.RemoveProcessed = &f.removeProcessed
		case "ledger":
			l.LedgerPath = &f.ledger
		}
	})
	return l
}
