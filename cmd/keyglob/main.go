// Command keyglob matches keys against glob patterns, filters key streams and
// serves the matching and subscription HTTP API.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/twinfer/keyglob/internal/config"
	"github.com/twinfer/keyglob/internal/logger"
)

const (
	exitOK       = 0
	exitNoMatch  = 1
	exitFailure  = 2
	progName     = "keyglob"
	progUsage    = "[OPTIONS] <match | filter | serve>"
	defaultLevel = "info"
)

// errNoMatch makes the process exit with exitNoMatch without printing anything.
var errNoMatch = errors.New("no match")

// app holds the global options and the state shared by every command.
type app struct {
	Debug   bool   `short:"d" long:"debug" description:"debug mode"`
	LogFile string `long:"log-file" value-name:"PATH" description:"also append log records to this file"`
	Config  string `short:"c" long:"config" value-name:"PATH" description:"YAML config file"`

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	cfg  *config.Config
	sink *logger.Sink
	log  *slog.Logger
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	defer a.close()

	parser := flags.NewParser(a, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = progName
	parser.Usage = progUsage

	if _, err := parser.AddCommand("match",
		"Match subjects against a pattern",
		"Exits 0 when every SUBJECT matches PATTERN and 1 otherwise.",
		&matchCommand{app: a, ctx: ctx}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("filter",
		"Filter stdin lines by include and exclude patterns",
		"Reads lines from stdin and writes the accepted ones to stdout in input order.",
		&filterCommand{app: a, ctx: ctx}); err != nil {
		panic(err)
	}
	if _, err := parser.AddCommand("serve",
		"Serve the HTTP API",
		"Serves matching, filtering and pattern subscriptions over HTTP until interrupted.",
		&serveCommand{app: a, ctx: ctx}); err != nil {
		panic(err)
	}

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		if err := a.setup(); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	_, err := parser.ParseArgs(args)
	switch {
	case err == nil:
		return exitOK
	case flags.WroteHelp(err):
		fmt.Fprintln(stdout, err)
		return exitOK
	case errors.Is(err, errNoMatch):
		return exitNoMatch
	}

	if a.log != nil {
		a.log.Error(err.Error())
	} else {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
	}
	return exitFailure
}

// setup loads the config and builds the log sink. It runs once the command
// line has been parsed.
func (a *app) setup() error {
	cfg, err := config.Load(a.Config)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cmp.Or(cfg.Log.Level, defaultLevel)
	if a.Debug {
		level = "debug"
	}
	a.sink = logger.NewSink(logger.Options{Writer: a.stderr, Level: level})
	a.log = a.sink.Logger()

	if path := cmp.Or(a.LogFile, cfg.Log.File); path != "" {
		if err := a.sink.Open(path); err != nil {
			return err
		}
		a.sink.FileOnly().Info("log opened", "program", progName, "pid", os.Getpid())
	}
	return nil
}

func (a *app) close() {
	if a.sink == nil {
		return
	}
	if a.sink.Path() != "" {
		a.sink.FileOnly().Info("log closed", "program", progName)
	}
	if err := a.sink.Close(); err != nil {
		fmt.Fprintf(a.stderr, "%s: close log: %v\n", progName, err)
	}
}
