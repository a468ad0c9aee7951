// Package config defines the format-agnostic configuration of a conversion
// run, along with the Loader interface implemented by the job file formats.
//
// A run's configuration is assembled from layers. Each source (built-in
// defaults, environment, job file, command-line flags) produces a Layer in
// which only the settings it names are set, and layers are applied in order
// of increasing precedence onto a Model.
package config
