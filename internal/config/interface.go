package config

import "context"

// Loader is the interface for a format-specific job file loader.
type Loader interface {
	// Load reads the job file at path and returns the settings it names.
	Load(ctx context.Context, path string) (*Layer, error)
}
