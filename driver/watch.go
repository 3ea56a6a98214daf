package driver

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/logger"
)

// Watch translates path once, then again after every change to it, until ctx
// is cancelled. Each cycle is an independent run: a failed cycle is passed to
// onError and watching continues.
//
// The parent directory is watched rather than the file so that editors which
// save by replacing the file are still seen.
func Watch(ctx context.Context, path string, opts Options, w io.Writer, onError func(error)) error {
	log := opts.log().With(logger.FieldFile, path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	cycle := func() {
		start := time.Now()
		stream, err := TranslateFile(ctx, path, opts.Translate)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Debugw("Watch cycle failed", logger.FieldError, err)
			if onError != nil {
				onError(err)
			}
			return
		}

		var buf bytes.Buffer
		buf.WriteString("// file: " + path + "\n")
		buf.WriteString(stream.String())
		if _, err := buf.WriteTo(w); err != nil {
			log.Warnw("Failed to write output", logger.FieldError, err)
			return
		}
		log.Infow("Re-translated",
			logger.FieldMarkers, stream.Markers(),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}

	cycle()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			// Only re-translate on Write or Create events
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Debugw("Watch detected change", "op", event.Op.String())

			// Debounce rapid successive writes
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(opts.Debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			cycle()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}
