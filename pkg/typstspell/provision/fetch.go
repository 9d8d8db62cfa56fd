package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cognicore/typstspell/pkg/typstspell/internalerr"
)

const (
	defaultTimeout  = 60 * time.Second
	defaultRetryMax = 2

	// maxDictionaryBytes bounds the download; words_alpha.txt is about 4 MiB.
	maxDictionaryBytes = 64 << 20
)

// CachedSource reads the word list at Path, downloading it from URL first
// when the file does not exist yet.
type CachedSource struct {
	Path   string
	URL    string
	Client *http.Client
	Logger *log.Logger
}

// Lines implements Source.
func (s CachedSource) Lines(ctx context.Context) ([]string, error) {
	if _, err := os.Stat(s.Path); errors.Is(err, os.ErrNotExist) {
		if err := s.Fetch(ctx); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrDictionaryUnavailable, err)
	}
	return FileSource{Path: s.Path}.Lines(ctx)
}

// Fetch downloads URL and atomically replaces the cached file at Path,
// creating its directory if needed.
func (s CachedSource) Fetch(ctx context.Context) error {
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	client := s.Client
	if client == nil {
		client = NewClient()
	}
	if s.Logger != nil {
		s.Logger.Printf("Downloading dictionary from %s to %s", url, s.Path)
	}

	data, err := download(ctx, client, url)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", internalerr.ErrDictionaryUnavailable, url, err)
	}
	if err := writeFileAtomic(filepath.Dir(s.Path), filepath.Base(s.Path), data); err != nil {
		return fmt.Errorf("%w: cache %s: %v", internalerr.ErrDictionaryUnavailable, s.Path, err)
	}
	return nil
}

func download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDictionaryBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDictionaryBytes {
		return nil, fmt.Errorf("word list larger than %d bytes", maxDictionaryBytes)
	}
	if len(data) == 0 {
		return nil, errors.New("empty word list")
	}
	return data, nil
}

// retryTransport retries idempotent requests that fail before a response
// arrives. HTTP error statuses are returned as-is.
type retryTransport struct {
	base     http.RoundTripper
	retryMax int
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	canRetry := (req.Method == http.MethodGet || req.Method == http.MethodHead) && req.Body == nil
	max := t.retryMax
	if !canRetry || max < 0 {
		max = 0
	}

	var lastErr error
	for attempt := 0; attempt <= max; attempt++ {
		r := req.Clone(req.Context())
		if r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", AppName)
		}
		resp, err := t.base.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if req.Context().Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

// NewClient returns the HTTP client used for dictionary downloads: bounded
// retries and an overall timeout.
func NewClient() *http.Client {
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
	}
	return &http.Client{
		Transport: &retryTransport{base: base, retryMax: defaultRetryMax},
		Timeout:   defaultTimeout,
	}
}

// writeFileAtomic writes name inside dir through a temporary file and a
// rename, replacing any existing file.
func writeFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		cleanup()
		return err
	}
	return nil
}
