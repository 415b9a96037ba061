// Package config loads herblint project configuration.
//
// Three formats are supported:
//   - .herb.yml: YAML, the canonical format
//   - herb.toml: the same shape in TOML
//   - herb.star: a Starlark file whose configure() function returns the
//     same shape as a dict
//
// Configuration is discovered by walking up from the working directory to
// the repository root. HERB_CONFIG or the --config flag name a file
// explicitly.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/albertocavalcante/herb/internal/herb/linter"
)

// Config file names in priority order.
const (
	FileYAML     = ".herb.yml"
	FileTOML     = "herb.toml"
	FileStarlark = "herb.star"
)

// EnvConfig is the environment variable for specifying config file path.
const EnvConfig = "HERB_CONFIG"

var (
	// ErrConflict is returned when multiple config files exist in the same directory.
	ErrConflict = errors.New("multiple config files found in the same directory; use only one")

	// ErrInvalid is returned when a config file has unknown keys or values
	// that fail validation.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the contents of a configuration file.
type Config struct {
	Version string      `yaml:"version,omitempty" toml:"version" validate:"omitempty,semver"`
	Files   FilesConfig `yaml:"files,omitempty" toml:"files"`
	Linter  Linter      `yaml:"linter,omitempty" toml:"linter"`
}

// FilesConfig selects the files herblint considers at all.
type FilesConfig struct {
	Include []string `yaml:"include,omitempty" toml:"include" validate:"dive,glob"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude" validate:"dive,glob"`
}

// Linter holds linter settings. Include and Exclude replace the top-level
// file lists when set.
type Linter struct {
	Enabled          *bool    `yaml:"enabled,omitempty" toml:"enabled"`
	Include          []string `yaml:"include,omitempty" toml:"include" validate:"dive,glob"`
	Exclude          []string `yaml:"exclude,omitempty" toml:"exclude" validate:"dive,glob"`
	WarningsAsErrors bool     `yaml:"warnings_as_errors,omitempty" toml:"warnings_as_errors"`

	Rules map[string]Rule `yaml:"rules,omitempty" toml:"rules" validate:"dive"`
}

// Rule overrides the defaults of one rule.
type Rule struct {
	Enabled  *bool    `yaml:"enabled,omitempty" toml:"enabled"`
	Severity string   `yaml:"severity,omitempty" toml:"severity" validate:"omitempty,oneof=error warning info hint"`
	Include  []string `yaml:"include,omitempty" toml:"include" validate:"dive,glob"`
	Exclude  []string `yaml:"exclude,omitempty" toml:"exclude" validate:"dive,glob"`
	Only     []string `yaml:"only,omitempty" toml:"only" validate:"dive,glob"`
}

// Default returns an empty configuration: every rule keeps its default.
func Default() *Config {
	return &Config{Linter: Linter{Rules: map[string]Rule{}}}
}

// LinterEnabled reports whether linting is turned on.
func (c *Config) LinterEnabled() bool {
	return c.Linter.Enabled == nil || *c.Linter.Enabled
}

// Load loads configuration from path. The format is chosen by extension.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch ext := filepath.Ext(path); ext {
	case ".yml", ".yaml":
		cfg, err = LoadYAML(path)
	case ".toml":
		cfg, err = LoadTOML(path)
	case ".star":
		cfg, err = LoadStarlark(path, DefaultStarlarkTimeout)
	default:
		return nil, fmt.Errorf("unsupported config file extension: %s (expected .yml, .toml, or .star)", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Linter.Rules == nil {
		cfg.Linter.Rules = map[string]Rule{}
	}
	return cfg, nil
}

// Discover searches for a configuration file.
//
// Resolution order:
//  1. If HERB_CONFIG is set, use that path
//  2. Walk up from startDir looking for config files, stopping at the git
//     root
//
// If several config files exist in one directory, ErrConflict is returned.
// If no config is found, Discover returns (Default(), "", nil).
func Discover(startDir string, logger *slog.Logger) (*Config, string, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		cfg, err := Load(envPath)
		if err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", EnvConfig, err)
		}
		logger.Debug("loaded config", "path", envPath, "source", EnvConfig)
		return cfg, envPath, nil
	}

	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return nil, "", fmt.Errorf("getting working directory: %w", err)
		}
	}
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path: %w", err)
	}

	gitRoot := findGitRoot(absDir)
	dir := absDir
	for {
		configPath, err := findConfigInDir(dir)
		if err != nil {
			return nil, "", err
		}
		if configPath != "" {
			cfg, err := Load(configPath)
			if err != nil {
				return nil, "", err
			}
			logger.Debug("loaded config", "path", configPath)
			return cfg, configPath, nil
		}

		if gitRoot != "" && dir == gitRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	logger.Debug("no config file found", "start", absDir)
	return Default(), "", nil
}

// findConfigInDir returns the config file in dir, or "" if there is none.
func findConfigInDir(dir string) (string, error) {
	var found []string
	for _, name := range []string{FileYAML, FileTOML, FileStarlark} {
		if fileExists(filepath.Join(dir, name)) {
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return filepath.Join(dir, found[0]), nil
	default:
		return "", fmt.Errorf("%w: found %s in %s", ErrConflict, strings.Join(found, ", "), dir)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// findGitRoot returns the nearest ancestor of startDir containing .git, or
// "" outside a repository.
func findGitRoot(startDir string) string {
	dir := startDir
	for {
		if fileExists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Merge merges other into c. Set values in other win; rule overrides are
// merged field by field.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.Files.Include != nil {
		c.Files.Include = other.Files.Include
	}
	if other.Files.Exclude != nil {
		c.Files.Exclude = other.Files.Exclude
	}
	if other.Linter.Enabled != nil {
		c.Linter.Enabled = other.Linter.Enabled
	}
	if other.Linter.Include != nil {
		c.Linter.Include = other.Linter.Include
	}
	if other.Linter.Exclude != nil {
		c.Linter.Exclude = other.Linter.Exclude
	}
	if other.Linter.WarningsAsErrors {
		c.Linter.WarningsAsErrors = true
	}
	if len(other.Linter.Rules) > 0 && c.Linter.Rules == nil {
		c.Linter.Rules = make(map[string]Rule, len(other.Linter.Rules))
	}
	for name, o := range other.Linter.Rules {
		c.Linter.Rules[name] = c.Linter.Rules[name].merge(o)
	}
}

func (r Rule) merge(o Rule) Rule {
	if o.Enabled != nil {
		r.Enabled = o.Enabled
	}
	if o.Severity != "" {
		r.Severity = o.Severity
	}
	if o.Include != nil {
		r.Include = o.Include
	}
	if o.Exclude != nil {
		r.Exclude = o.Exclude
	}
	if o.Only != nil {
		r.Only = o.Only
	}
	return r
}

// ToLinter converts c into a linter configuration for the rules in reg.
// Rules the registry does not know are skipped.
func (c *Config) ToLinter(reg *linter.Registry, logger *slog.Logger) (*linter.Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := linter.NewConfig()
	out.WarningsAsErrors = c.Linter.WarningsAsErrors
	out.Files = linter.FileFilter{
		Include: cmpOr(c.Linter.Include, c.Files.Include),
		Exclude: cmpOr(c.Linter.Exclude, c.Files.Exclude),
	}

	names := make([]string, 0, len(c.Linter.Rules))
	for name := range c.Linter.Rules {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, ok := reg.Rule(name); !ok {
			logger.Debug("ignoring unknown rule in config", "rule", name)
			continue
		}
		r := c.Linter.Rules[name]
		o := linter.RuleOverride{
			Enabled: r.Enabled,
			Include: r.Include,
			Exclude: r.Exclude,
			Only:    r.Only,
		}
		if r.Severity != "" {
			sev, err := linter.ParseSeverity(r.Severity)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", name, err)
			}
			o.Severity = &sev
		}
		out.Rules[name] = o
	}
	return out, nil
}

// cmpOr returns the first non-nil list.
func cmpOr(lists ...[]string) []string {
	for _, l := range lists {
		if l != nil {
			return l
		}
	}
	return nil
}
