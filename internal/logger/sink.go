// Package logger is the structured logging sink shared by the keyglob
// command and server. A Sink always writes to its terminal writer and can
// additionally persist records to an append-only file between Open and Close.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Options configures a Sink.
type Options struct {
	// Writer receives terminal output. Defaults to os.Stderr.
	Writer io.Writer
	// Level is a level name: error, warn, notice, info, debug or off. Defaults to "info".
	Level string
}

// Sink owns the terminal handler and the optional backing file.
type Sink struct {
	level *level

	term slog.Handler

	mu          sync.RWMutex
	file        *os.File
	path        string
	fileHandler slog.Handler
}

// NewSink creates a sink. Terminal output is colorized with tint when the
// writer is a terminal, and plain logfmt otherwise.
func NewSink(opts Options) *Sink {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	s := &Sink{level: newLevel()}
	s.level.Set(slog.LevelInfo)
	if opts.Level != "" {
		s.level.SetByName(opts.Level)
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		s.term = newTerminalHandler(w, s.level)
	} else {
		s.term = newTextHandler(w, s.level, false)
	}
	return s
}

// SetLevel changes the level of every logger derived from the sink. It takes
// the names understood by Options.Level; unknown names are ignored.
func (s *Sink) SetLevel(name string) {
	s.level.SetByName(name)
}

// Enabled reports whether records at lvl are currently written.
func (s *Sink) Enabled(lvl slog.Level) bool {
	return s.level.Enabled(lvl)
}

// Logger returns a logger writing to the terminal and, when open, the file.
func (s *Sink) Logger() *slog.Logger {
	return slog.New(&sinkHandler{sink: s, term: s.term})
}

// FileOnly returns a logger whose records only reach the backing file. They
// are dropped while no file is open.
func (s *Sink) FileOnly() *slog.Logger {
	return slog.New(&sinkHandler{sink: s})
}

// Open starts persisting records to path, appending to it. Opening the path
// that is already open is a no-op; opening another path replaces it.
func (s *Sink) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil && s.path == path {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	if s.file != nil {
		_ = s.file.Close()
	}
	s.file, s.path = f, path
	s.fileHandler = newTextHandler(f, s.level, true)
	return nil
}

// Close stops file persistence. It is safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file, s.path, s.fileHandler = nil, "", nil
	return err
}

// Path returns the backing file path, or "" when no file is open.
func (s *Sink) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}
