// Package config handles loading preprocessor configuration from files.
//
// Configuration can be specified in a JSON file named vglsl.json or .vglslrc.
// The config file is searched for in the current directory and parent directories.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"codeberg.org/saruga/vglsl/internal/preprocessor"
)

// Config represents the configuration file structure.
// All fields are optional and will use default values if not specified.
type Config struct {
	// BasePath resolves relative #include names
	BasePath *string `json:"basePath,omitempty"`

	// RemoveComments strips // and /* */ comments
	RemoveComments *bool `json:"removeComments,omitempty"`

	// PreserveLines emits #line markers around included files
	PreserveLines *bool `json:"preserveLines,omitempty"`

	// MaxIncludeDepth bounds #include recursion
	MaxIncludeDepth *int `json:"maxIncludeDepth,omitempty"`

	// MaxOutputSize caps the expanded output in bytes
	MaxOutputSize *int `json:"maxOutputSize,omitempty"`

	// Defines lists macros predefined before the first source line
	Defines map[string]string `json:"defines,omitempty"`

	// IncludePaths maps virtual include namespaces to real directories
	IncludePaths map[string]string `json:"includePaths,omitempty"`
}

// ConfigFileNames are the names searched for config files, in order of preference.
var ConfigFileNames = []string{
	"vglsl.json",
	".vglslrc",
	".vglslrc.json",
}

// Load searches for a config file starting from the given directory
// and walking up to parent directories. Returns nil if no config file is found.
func Load(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := LoadFile(path)
				return cfg, path, err
			}
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root, no config found
			return nil, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ToConfig converts a Config to preprocessor.Config, using defaults for unset fields.
func (c *Config) ToConfig() preprocessor.Config {
	cfg := preprocessor.DefaultConfig()

	if c.BasePath != nil {
		cfg.BasePath = *c.BasePath
	}
	if c.RemoveComments != nil {
		cfg.RemoveComments = *c.RemoveComments
	}
	if c.PreserveLines != nil {
		cfg.PreserveLines = *c.PreserveLines
	}
	if c.MaxIncludeDepth != nil {
		cfg.MaxIncludeDepth = *c.MaxIncludeDepth
	}
	if c.MaxOutputSize != nil {
		cfg.MaxOutputSize = *c.MaxOutputSize
	}
	if len(c.Defines) > 0 {
		cfg.Defines = make(map[string]string, len(c.Defines))
		for name, value := range c.Defines {
			cfg.Defines[name] = value
		}
	}

	return cfg
}

// MergeOptions carries CLI options merged over config file options.
type MergeOptions struct {
	// CLI flags (nil means not specified on CLI)
	BasePath        *string
	RemoveComments  *bool
	PreserveLines   *bool
	MaxIncludeDepth *int
	Defines         map[string]string
}

// Merge merges CLI options with config file options.
// CLI options override config file options when specified.
func (c *Config) Merge(cli MergeOptions) preprocessor.Config {
	cfg := c.ToConfig()

	// CLI overrides
	if cli.BasePath != nil {
		cfg.BasePath = *cli.BasePath
	}
	if cli.RemoveComments != nil {
		cfg.RemoveComments = *cli.RemoveComments
	}
	if cli.PreserveLines != nil {
		cfg.PreserveLines = *cli.PreserveLines
	}
	if cli.MaxIncludeDepth != nil {
		cfg.MaxIncludeDepth = *cli.MaxIncludeDepth
	}
	if len(cli.Defines) > 0 {
		// CLI defines are added on top of config file defines
		if cfg.Defines == nil {
			cfg.Defines = make(map[string]string, len(cli.Defines))
		}
		for name, value := range cli.Defines {
			cfg.Defines[name] = value
		}
	}

	return cfg
}
