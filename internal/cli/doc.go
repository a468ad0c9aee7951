// Package cli parses command-line arguments into an app.Config. It layers
// flags over an optional job file, the environment and a .env file, and
// reports usage problems as an ExitError carrying the process exit code.
package cli
