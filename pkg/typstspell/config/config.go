package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
	"github.com/cognicore/typstspell/pkg/typstspell/provision"
)

// Environment variables that override the config file.
const (
	EnvConfig  = "TYPST_SPELL_CONFIG"
	EnvDict    = "TYPST_SPELL_DICT"
	EnvDictURL = "TYPST_SPELL_DICT_URL"
)

// Config represents the YAML configuration file.
//
// Example:
//
//	dictionary:
//	  path: ~/words/en.txt
//	  url: https://example.com/words.txt
//	ignore: [typst, ppi]
//	strict: false
//	highlight:
//	  color: "1"
//	report:
//	  line_base: 1
//	history:
//	  enabled: true
//	  db: ~/.local/share/typst-spell-check/state.db
type Config struct {
	Dictionary Dictionary `yaml:"dictionary"`
	Ignore     []string   `yaml:"ignore"`
	Strict     bool       `yaml:"strict"`
	Highlight  Highlight  `yaml:"highlight"`
	Report     Report     `yaml:"report"`
	History    History    `yaml:"history"`
}

// Dictionary configures where the word list comes from.
type Dictionary struct {
	Path string `yaml:"path"`
	URL  string `yaml:"url"`
	// Offline never downloads; a missing word list is an error.
	Offline bool `yaml:"offline"`
}

// Highlight configures inline highlighting.
type Highlight struct {
	Color string `yaml:"color"`
}

// Report configures the per-line report.
type Report struct {
	// LineBase is 0 or 1 and is added to printed line indexes.
	LineBase int `yaml:"line_base"`
}

// History configures the run history database.
type History struct {
	Enabled *bool  `yaml:"enabled"`
	DB      string `yaml:"db"`
}

// HistoryEnabled reports whether runs should be recorded. Defaults to true.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dictionary: Dictionary{URL: provision.DefaultURL},
	}
}

// LoadFile loads a config file on top of Default. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Options controls Load.
type Options struct {
	// Path is an explicit config file; it must exist.
	Path string
	// EnvFile is loaded with godotenv when present. Defaults to ".env".
	EnvFile string
}

// Load resolves the effective configuration: .env file, config file
// (explicit path, $TYPST_SPELL_CONFIG, or the per-user default when it exists),
// then environment overrides. Paths have ~ expanded.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, envFile, err)
		}
	}

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p := os.Getenv(EnvConfig); p != "" {
			path, explicit = p, true
		}
	}
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
		}
		loaded, err := LoadFile(expanded)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// no per-user config; defaults apply
		default:
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if v := os.Getenv(EnvDict); v != "" {
		cfg.Dictionary.Path = v
	}
	if v := os.Getenv(EnvDictURL); v != "" {
		cfg.Dictionary.URL = v
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns <user config dir>/typst-spell-check/config.yaml, or ""
// when the config dir cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, provision.AppName, "config.yaml")
}

func (c *Config) normalize() error {
	var err error
	if c.Dictionary.Path, err = homedir.Expand(c.Dictionary.Path); err != nil {
		return fmt.Errorf("%w: dictionary.path: %v", internalerr.ErrInvalidConfig, err)
	}
	if c.History.DB, err = homedir.Expand(c.History.DB); err != nil {
		return fmt.Errorf("%w: history.db: %v", internalerr.ErrInvalidConfig, err)
	}
	if c.Dictionary.URL == "" {
		c.Dictionary.URL = provision.DefaultURL
	}
	if c.Report.LineBase != 0 && c.Report.LineBase != 1 {
		return fmt.Errorf("%w: report.line_base must be 0 or 1, got %d", internalerr.ErrInvalidConfig, c.Report.LineBase)
	}
	if !validColor(c.Highlight.Color) {
		return fmt.Errorf("%w: highlight.color must be an ANSI index 0-255 or #rgb/#rrggbb, got %q", internalerr.ErrInvalidConfig, c.Highlight.Color)
	}
	return nil
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validColor accepts what termenv.Output.Color understands. Empty selects
// the default.
func validColor(s string) bool {
	if s == "" || hexColorRe.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}
