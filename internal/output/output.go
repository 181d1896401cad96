// Package output writes the rendered payload to standard output or to a
// file. File writes are atomic: the destination either receives the full
// payload or is left untouched.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Options configures a Sink.
type Options struct {
	// Path is the destination file. Empty means Stdout.
	Path   string
	Stdout io.Writer
	Stderr io.Writer
	// Quiet suppresses the notice printed after a file write.
	Quiet bool
	// UTF8Console switches the console to UTF-8 before writing to Stdout.
	UTF8Console bool
}

// Sink is the destination of one rendered report.
type Sink struct {
	opts   Options
	logger *zap.Logger
}

// New creates a Sink. Nil writers default to the process streams.
func New(opts Options, logger *zap.Logger) *Sink {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{opts: opts, logger: logger}
}

// Write delivers the payload unchanged. Any error is fatal for the invocation.
func (s *Sink) Write(payload []byte) error {
	if s.opts.Path == "" {
		return s.writeStdout(payload)
	}

	if err := writeFileAtomic(s.opts.Path, payload, 0o644); err != nil {
		return fmt.Errorf("write output file %s: %w", s.opts.Path, err)
	}
	s.logger.Info("Report written",
		zap.String("path", s.opts.Path),
		zap.Int("bytes", len(payload)))

	if !s.opts.Quiet {
		fmt.Fprintf(s.opts.Stderr, "Results written to %s\n", s.opts.Path)
	}
	return nil
}

func (s *Sink) writeStdout(payload []byte) error {
	if s.opts.UTF8Console {
		if err := EnableUTF8Console(); err != nil {
			s.logger.Warn("Failed to switch console to UTF-8", zap.Error(err))
		}
	}
	if _, err := s.opts.Stdout.Write(payload); err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temporary file next to path, syncs it
// and renames it over path. The temporary file is removed on any failure.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
