// Package project locates and decodes hlsl.toml, the per-project settings
// file for the checker.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for by FindConfig.
const ManifestName = "hlsl.toml"

var formats = []string{"pretty", "short", "json", "msgpack"}

// CheckSection is the [check] table.
type CheckSection struct {
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
	NoWarnings       bool   `toml:"no_warnings"`
	Jobs             int    `toml:"jobs"`
	Format           string `toml:"format"`
}

// TraceSection is the [trace] table.
type TraceSection struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

// Config is the decoded manifest. Path and Root are empty when no file was
// found and Default was used.
type Config struct {
	Check CheckSection `toml:"check"`
	Trace TraceSection `toml:"trace"`

	Path string `toml:"-"`
	Root string `toml:"-"`

	meta toml.MetaData
}

// Default returns the settings used without a manifest.
func Default() *Config {
	return &Config{
		Check: CheckSection{MaxDiagnostics: 100, Format: "pretty"},
		Trace: TraceSection{Level: "off", Mode: "stream"},
	}
}

// IsSet reports whether key (e.g. "check", "jobs") was present in the file.
func (c *Config) IsSet(key ...string) bool {
	if c == nil || c.Path == "" {
		return false
	}
	return c.meta.IsDefined(key...)
}

// FindConfig walks up from startDir to locate hlsl.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the manifest at path over the defaults. Unknown keys are
// rejected so that typos do not go unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.meta = meta
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the manifest nearest to startDir, or Default when none
// exists.
func Discover(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("check.max_diagnostics must not be negative, got %d", c.Check.MaxDiagnostics)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("check.jobs must not be negative, got %d", c.Check.Jobs)
	}
	if !slices.Contains(formats, c.Check.Format) {
		return fmt.Errorf("check.format must be one of %s, got %q", strings.Join(formats, ", "), c.Check.Format)
	}
	return nil
}
