package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/slp2graph/internal/config"
	"github.com/vk/slp2graph/internal/hcl"
	"github.com/vk/slp2graph/internal/tomlcfg"
	"github.com/vk/slp2graph/internal/yamlcfg"
)

// loaderFor picks the job file loader by extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.Loader{}, nil
	case ".toml":
		return tomlcfg.Loader{}, nil
	}
	return nil, fmt.Errorf("unsupported job file %s: want .hcl, .yaml, .yml or .toml", path)
}
