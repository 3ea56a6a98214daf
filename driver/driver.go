// Package driver loads Python files, runs the translator and writes the
// resulting Rust source. It owns all I/O around the single-threaded core.
package driver

import (
	"bytes"
	"context"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/py2rs/errors"
	"github.com/teranos/py2rs/logger"
	"github.com/teranos/py2rs/pyast"
	"github.com/teranos/py2rs/transpile"
)

// Options configure a driver run.
type Options struct {
	Translate transpile.Options
	// Workers bounds concurrent translations in batch mode.
	Workers int
	// Debounce is the quiet period before watch mode re-translates.
	Debounce time.Duration
	// Logger defaults to the "driver" component logger.
	Logger *zap.SugaredLogger
	// Verbosity is the -v count; trace and above log per-file detail.
	Verbosity int
}

func (o Options) log() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.ComponentLogger("driver")
}

// FileError attaches the input path to a failure.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// TranslateFile loads and parses path, then runs one traversal with its own
// Translator.
func TranslateFile(ctx context.Context, path string, opts transpile.Options) (*transpile.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mod, err := pyast.ParseFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	stream, err := transpile.New(opts).Translate(mod)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return stream, nil
}

// Run translates every path and writes the results to w in argument order.
// Files are translated concurrently, each with its own Translator. Output is
// written only after every file succeeded; on failure w receives nothing.
func Run(ctx context.Context, paths []string, opts Options, w io.Writer) error {
	if len(paths) == 0 {
		return errors.New("no input files")
	}
	log := opts.log()

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	streams := make([]*transpile.Stream, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	start := time.Now()
	for i, path := range paths {
		g.Go(func() error {
			fileStart := time.Now()
			stream, err := TranslateFile(gctx, path, opts.Translate)
			if err != nil {
				return err
			}
			streams[i] = stream
			if logger.ShouldLogTrace(opts.Verbosity) {
				flog := logger.ChildLogger(log, logger.FieldFile, path)
				flog.Debugw("Stream", logger.FieldFragments, stream.Len(), logger.FieldMarkers, stream.Markers())
				if logger.ShouldLogAll(opts.Verbosity) {
					flog.Debugw("Output", "rust", stream.String())
				}
			}
			log.Infow("Translated",
				logger.FieldFile, path,
				logger.FieldFragments, stream.Len(),
				logger.FieldMarkers, stream.Markers(),
				logger.FieldDurationMS, time.Since(fileStart).Milliseconds())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for i, stream := range streams {
		if len(paths) > 1 {
			if i > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString("// file: " + paths[i] + "\n")
		}
		if _, err := stream.WriteTo(&buf); err != nil {
			return errors.Wrap(err, "failed to buffer output")
		}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write output")
	}

	log.Debugw("Run complete",
		logger.FieldFiles, len(paths),
		logger.FieldWorkers, workers,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return nil
}
