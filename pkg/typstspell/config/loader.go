package config

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cognicore/typstspell/pkg/typstspell/provision"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
	"github.com/cognicore/typstspell/pkg/typstspell/store/sqlite"
)

// StateFileName is the SQLite database inside the data dir.
const StateFileName = "state.db"

// Loader turns a Config into the components a check run needs
type Loader struct {
	Config *Config

	// DictPath overrides the configured word list; such a file is never
	// downloaded into.
	DictPath string

	Logger *log.Logger
}

// Components holds the dictionary source and the state store.
type Components struct {
	Source   provision.Source
	DictPath string
	Ignore   []string
}

// Components resolves the word list source.
func (l *Loader) Components() (*Components, error) {
	cfg := l.config()

	if l.DictPath != "" {
		return &Components{
			Source:   provision.FileSource{Path: l.DictPath},
			DictPath: l.DictPath,
			Ignore:   cfg.Ignore,
		}, nil
	}

	path := cfg.Dictionary.Path
	if path == "" {
		p, err := provision.DefaultDictionaryPath()
		if err != nil {
			return nil, fmt.Errorf("resolve dictionary: %w", err)
		}
		path = p
	}

	var src provision.Source
	if cfg.Dictionary.Offline {
		src = provision.FileSource{Path: path}
	} else {
		src = provision.CachedSource{
			Path:   path,
			URL:    cfg.Dictionary.URL,
			Logger: l.logger(),
		}
	}

	return &Components{Source: src, DictPath: path, Ignore: cfg.Ignore}, nil
}

// StorePath returns the configured state database path, defaulting to
// <data dir>/state.db.
func (l *Loader) StorePath() (string, error) {
	if db := l.config().History.DB; db != "" {
		return db, nil
	}
	dir, err := provision.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

// OpenStore opens the state database, creating its directory.
func (l *Loader) OpenStore(ctx context.Context) (store.Store, error) {
	path, err := l.StorePath()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	st, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return st, nil
}

func (l *Loader) config() *Config {
	if l.Config == nil {
		return Default()
	}
	return l.Config
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return l.Logger
}
