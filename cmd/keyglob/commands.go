package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sourcegraph/conc/stream"

	"github.com/twinfer/keyglob"
	"github.com/twinfer/keyglob/filter"
	"github.com/twinfer/keyglob/internal/server"
	"github.com/twinfer/keyglob/pubsub"
)

const (
	filterBatchSize = 256
	maxLineSize     = 1 << 20
)

type matchCommand struct {
	app *app
	ctx context.Context

	IgnoreCase bool `short:"i" long:"ignore-case" description:"ASCII case-insensitive matching"`
	Args       struct {
		Pattern  string   `positional-arg-name:"PATTERN"`
		Subjects []string `positional-arg-name:"SUBJECT" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

func (c *matchCommand) Execute([]string) error {
	var (
		log     = c.app.log
		pattern = []byte(c.Args.Pattern)
		lim     = c.app.cfg.MatchLimits()
		misses  int
	)

	for _, subject := range c.Args.Subjects {
		matched, err := keyglob.MatchBounded(c.ctx, []byte(subject), pattern, c.IgnoreCase, lim)
		if err != nil {
			return fmt.Errorf("match %q against %q: %w", subject, c.Args.Pattern, err)
		}
		if matched {
			continue
		}
		misses++
		// Steps reruns the whole match.
		if log.Enabled(c.ctx, slog.LevelDebug) {
			log.Debug("no match", "subject", subject, "pattern", c.Args.Pattern,
				"steps", keyglob.Steps([]byte(subject), pattern, c.IgnoreCase))
		}
	}

	if misses > 0 {
		log.Debug("match finished", "subjects", len(c.Args.Subjects), "misses", misses)
		return errNoMatch
	}
	return nil
}

type filterCommand struct {
	app *app
	ctx context.Context

	IgnoreCase bool     `short:"i" long:"ignore-case" description:"ASCII case-insensitive matching"`
	Includes   []string `short:"e" long:"include" value-name:"PATTERN" description:"accept lines matching PATTERN (repeatable)"`
	Excludes   []string `short:"x" long:"exclude" value-name:"PATTERN" description:"reject lines matching PATTERN (repeatable)"`
	Workers    int      `short:"w" long:"workers" default:"0" description:"matching goroutines, 0 for GOMAXPROCS"`
}

func (c *filterCommand) Execute([]string) error {
	expr := c.app.cfg.Expr()
	if len(c.Includes) > 0 || len(c.Excludes) > 0 {
		expr = &filter.SimpleExpr{Includes: c.Includes, Excludes: c.Excludes}
	}
	expr.IgnoreCase = expr.IgnoreCase || c.IgnoreCase

	m, err := expr.ParseWithLimits(c.app.cfg.FilterLimits())
	if err != nil {
		if errors.Is(err, filter.ErrEmptyExpr) {
			return errors.New("no patterns: use --include/--exclude or the match section of the config")
		}
		return err
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	in, out, err := filterLines(c.ctx, m, c.app.stdin, c.app.stdout, workers)
	c.app.log.Debug("filter finished", "lines", in, "accepted", out, "workers", workers)
	return err
}

// filterLines copies the lines of r accepted by m to w. Lines are matched in
// batches on up to workers goroutines and written in input order.
func filterLines(ctx context.Context, m filter.Matcher, r io.Reader, w io.Writer, workers int) (in, out int, err error) {
	var (
		s        = stream.New().WithMaxGoroutines(workers)
		bw       = bufio.NewWriter(w)
		sc       = bufio.NewScanner(r)
		batch    = make([][]byte, 0, filterBatchSize)
		writeErr error
	)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	submit := func(lines [][]byte) {
		s.Go(func() stream.Callback {
			accepted := lines[:0]
			for _, line := range lines {
				if m.Match(line) {
					accepted = append(accepted, line)
				}
			}
			return func() {
				for _, line := range accepted {
					if writeErr != nil {
						return
					}
					out++
					if _, writeErr = bw.Write(line); writeErr == nil {
						writeErr = bw.WriteByte('\n')
					}
				}
			}
		})
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			s.Wait()
			return in, out, err
		}
		in++
		batch = append(batch, bytes.Clone(sc.Bytes()))
		if len(batch) == filterBatchSize {
			submit(batch)
			batch = make([][]byte, 0, filterBatchSize)
		}
	}
	if len(batch) > 0 {
		submit(batch)
	}
	s.Wait()

	if err := sc.Err(); err != nil {
		return in, out, fmt.Errorf("read input: %w", err)
	}
	if writeErr != nil {
		return in, out, fmt.Errorf("write output: %w", writeErr)
	}
	return in, out, bw.Flush()
}

type serveCommand struct {
	app *app
	ctx context.Context

	Addr string `short:"a" long:"addr" value-name:"HOST:PORT" description:"listen address, overrides server.addr"`
}

func (c *serveCommand) Execute([]string) error {
	ctx, stop := signal.NotifyContext(c.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := pubsub.NewRegistry(c.app.log, pubsub.WithLimits(c.app.cfg.MatchLimits()))
	defer reg.Close()

	srv, err := server.New(c.app.cfg, c.app.log, reg)
	if err != nil {
		return err
	}

	addr := c.app.cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	return srv.Run(ctx, addr)
}
