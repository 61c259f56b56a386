package main

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/luhtfiimanal/go-logring"
)

// watchHeader calls fn with the current snapshot of path, then again after
// every write to the file, until ctx ends. Writers using the mmap backend do
// not produce write events.
func watchHeader(ctx context.Context, path string, log zerolog.Logger, fn func(logring.Snapshot) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return errors.Wrapf(err, "watch %s", path)
	}

	emit := func() error {
		s, err := logring.ReadHeader(path)
		if err != nil {
			return err
		}
		return fn(s)
	}
	if err := emit(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				return errors.Errorf("%s was removed", path)
			}
			if ev.Op&fsnotify.Write == 0 {
				continue
			}
			if err := emit(); err != nil {
				// The header may be mid-update; the next event retries.
				log.Debug().Err(err).Str("file", path).Msg("read header")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher")
		}
	}
}
