// Package provision locates, downloads and caches the word list the checker
// uses as its dictionary.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"

	"github.com/cognicore/typstspell/internal/docio"
	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
)

const (
	// AppName names the per-user data and config directories.
	AppName = "typst-spell-check"

	// DefaultURL is fetched when no word list is cached yet.
	DefaultURL = "https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt"

	// DefaultFileName is the cached word list name inside DataDir.
	DefaultFileName = "words.txt"

	// EnvDataDir overrides the data directory.
	EnvDataDir = "TYPST_SPELL_DATA_DIR"
)

// Source supplies the word-list lines a dictionary is built from.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
}

// FileSource reads a local word list and never touches the network.
type FileSource struct {
	Path string
}

// Lines implements Source.
func (s FileSource) Lines(ctx context.Context) ([]string, error) {
	lines, err := docio.ReadLines(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrDictionaryUnavailable, err)
	}
	return lines, nil
}

// StaticSource serves a fixed word list. Useful for tests and for the
// configured ignore list.
type StaticSource []string

// Lines implements Source.
func (s StaticSource) Lines(ctx context.Context) ([]string, error) {
	return []string(s), nil
}

// DataDir returns the directory holding the cached word list and the state
// database. Resolution order: $TYPST_SPELL_DATA_DIR, $XDG_DATA_HOME,
// %APPDATA% on Windows, then ~/.local/share.
func DataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return homedir.Expand(dir)
	}
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, AppName), nil
		}
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// DefaultDictionaryPath is DataDir joined with DefaultFileName.
func DefaultDictionaryPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}
