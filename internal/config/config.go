// Package config resolves runtime settings from the environment, then from
// command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"skeleton-workbench/internal/logger"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

const (
	DefaultFiltersDir = "assets/filters"
	DefaultAssetsDir  = "assets/textures"
	DefaultReportPath = "minutiae.txt"
)

type Config struct {
	LogLevel   logger.LogLevel
	LogFormat  string
	FiltersDir string
	AssetsDir  string
	ReportPath string
}

// FromEnv reads LOG_LEVEL, DEBUG, LOG_FORMAT, WORKBENCH_FILTERS_DIR and
// WORKBENCH_ASSETS_DIR.
func FromEnv() Config {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) Config {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		LogLevel:   logger.InfoLevel,
		LogFormat:  strings.ToLower(get("LOG_FORMAT", FormatConsole)),
		FiltersDir: get("WORKBENCH_FILTERS_DIR", DefaultFiltersDir),
		AssetsDir:  get("WORKBENCH_ASSETS_DIR", DefaultAssetsDir),
		ReportPath: DefaultReportPath,
	}

	if level, ok := lookup("LOG_LEVEL"); ok && level != "" {
		cfg.LogLevel = logger.ParseLevel(level)
	} else if debug, _ := lookup("DEBUG"); debug == "1" {
		cfg.LogLevel = logger.DebugLevel
	}

	return cfg
}

// levelFlag adapts LogLevel to pflag.Value.
type levelFlag struct {
	level *logger.LogLevel
}

func (f levelFlag) String() string { return f.level.String() }

func (f levelFlag) Set(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug", "info", "warn", "warning", "error":
		*f.level = logger.ParseLevel(value)
		return nil
	default:
		return fmt.Errorf("unknown log level %q", value)
	}
}

func (f levelFlag) Type() string { return "level" }

// BindFlags registers flags whose defaults are the current values, so the
// environment supplies defaults and flags override them.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.Var(levelFlag{&c.LogLevel}, "log-level", "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log output: console or json")
	fs.StringVar(&c.FiltersDir, "filters-dir", c.FiltersDir, "directory holding .ftr kernel files")
	fs.StringVar(&c.AssetsDir, "assets-dir", c.AssetsDir, "directory searched for image arguments not found as given")
	fs.StringVar(&c.ReportPath, "report", c.ReportPath, "minutiae report output path")
}

func (c Config) Validate() error {
	switch c.LogFormat {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: want %s or %s", c.LogFormat, FormatConsole, FormatJSON)
	}
	if c.FiltersDir == "" {
		return fmt.Errorf("filters directory must not be empty")
	}
	return nil
}

// ResolveImage returns path unchanged when it names an existing file, or
// the same relative name under AssetsDir when only that exists.
func (c Config) ResolveImage(path string) string {
	if fileExists(path) || filepath.IsAbs(path) || c.AssetsDir == "" {
		return path
	}
	if candidate := filepath.Join(c.AssetsDir, path); fileExists(candidate) {
		return candidate
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// NewLogger builds the zerolog-backed logger the settings describe.
func (c Config) NewLogger() logger.Logger {
	if c.LogFormat == FormatJSON {
		return logger.NewJSONLogger(c.LogLevel)
	}
	return logger.NewConsoleLogger(c.LogLevel)
}
