package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle absorbs the burst of events editors emit for a single save.
const settle = 150 * time.Millisecond

// watch checks the document once, then again after every change until ctx
// is done. The parent directory is watched so that editors which save by
// renaming a temp file over the original are still seen.
func watch(ctx context.Context, s *session, stdout, stderr io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(s.args.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	recheck := func() {
		if err := s.check(ctx, stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}
	recheck()

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isChange(ev, target) {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			fmt.Fprintf(stdout, "\n--- %s changed ---\n", s.args.path)
			recheck()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(stderr, "Warning: watch: %v\n", err)
		}
	}
}

func isChange(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
