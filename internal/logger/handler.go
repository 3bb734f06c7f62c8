package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"github.com/lmittmann/tint"
)

func newTextHandler(w io.Writer, lvl *level, withTime bool) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				if !withTime {
					return slog.Attr{}
				}
			case slog.LevelKey:
				lvl := a.Value.Any().(slog.Level)
				s, ok := customLevels[lvl]
				if !ok {
					s = lvl.String()
				}
				return slog.String(a.Key, strings.ToLower(s))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer, lvl *level) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor: runtime.GOOS == "windows",
		Level:   lvl.lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lvl := a.Value.Any().(slog.Level)
				if s, ok := customLevelsTerm[lvl]; ok {
					return slog.String(a.Key, s)
				}
			}
			return a
		},
	})
}

// sinkHandler fans a record out to the terminal handler and, while the sink
// has a file open, to the file handler. Attributes and groups added through
// With are replayed on the file handler because the file can be opened after
// the logger was derived.
type sinkHandler struct {
	sink *Sink
	term slog.Handler // nil for file-only loggers
	ops  []func(slog.Handler) slog.Handler
}

func (h *sinkHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.sink.level.Enabled(level)
}

func (h *sinkHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if h.term != nil {
		errs = append(errs, h.term.Handle(ctx, r.Clone()))
	}

	h.sink.mu.RLock()
	defer h.sink.mu.RUnlock()
	if fh := h.sink.fileHandler; fh != nil {
		for _, op := range h.ops {
			fh = op(fh)
		}
		errs = append(errs, fh.Handle(ctx, r))
	}
	return errors.Join(errs...)
}

func (h *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(sh slog.Handler) slog.Handler { return sh.WithAttrs(attrs) })
}

func (h *sinkHandler) WithGroup(name string) slog.Handler {
	return h.with(func(sh slog.Handler) slog.Handler { return sh.WithGroup(name) })
}

func (h *sinkHandler) with(op func(slog.Handler) slog.Handler) slog.Handler {
	n := &sinkHandler{sink: h.sink, ops: append(slices.Clone(h.ops), op)}
	if h.term != nil {
		n.term = op(h.term)
	}
	return n
}
