// ABOUTME: CLI entry point: streams rows from a command, file or demo generator into a live table
// ABOUTME: Loads config, owns the terminal for the session, and hot-reloads the layout on config edits

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/streamtable/internal/config"
	"github.com/mauromedda/streamtable/internal/log"
	"github.com/mauromedda/streamtable/pkg/streamtable"
	"github.com/mauromedda/streamtable/pkg/tui/key"
	"github.com/mauromedda/streamtable/pkg/tui/terminal"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args := parseFlags()

	if args.version {
		fmt.Printf("streamtable %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads config, picks the row source, and drives the table until the
// user quits, a signal arrives, or the source fails.
func run(args cliArgs) error {
	if args.verbose {
		log.SetLevel(log.LevelDebug)
	}
	closeLog, err := setupLog(args.logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	paths, err := configPaths(args.configPath)
	if err != nil {
		return err
	}
	file, err := config.Load(paths...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if args.maxRows != 0 {
		file.MaxRows = args.maxRows
	}
	cfg, err := file.TableConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	bindCtrlCQuit(cfg.Keymap)

	src, err := pickSource(args, file)
	if err != nil {
		return err
	}

	tbl, err := streamtable.New(cfg)
	if err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	surface := terminal.NewANSISurface(terminal.NewProcessTerminal(os.Stdin, os.Stdout), os.Stdin)
	defer terminal.RestoreOnPanic(surface)

	if err := tbl.Start(ctx, surface); err != nil {
		return err
	}
	log.Info("table started with %d columns, %s max rows", len(cfg.Columns), humanize.Comma(int64(maxRows(cfg))))

	var ingested atomic.Int64
	emit := func(row streamtable.Row) {
		tbl.Ingest(row)
		ingested.Add(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(surface, cancel, func() error { return src(gctx, emit) }))

	watcher := config.NewWatcher(paths, 0, func(f *config.File, err error) {
		reloadLayout(tbl, f, err)
	})
	g.Go(guard(surface, cancel, func() error {
		if err := watcher.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}))

	select {
	case <-tbl.Done():
	case <-gctx.Done():
	}
	stopErr := tbl.Stop()
	cancel()
	srcErr := g.Wait()

	log.Info("ingested %s rows, %s selected", humanize.Comma(ingested.Load()), humanize.Comma(int64(len(tbl.Selected()))))
	return errors.Join(tbl.Err(), srcErr, stopErr)
}

// guard runs fn with the terminal restored on panic. A panic also cancels
// the session so the table shuts down instead of drawing over the report.
func guard(surface terminal.Finisher, cancel context.CancelFunc, fn func() error) func() error {
	return func() error {
		returned := false
		defer func() {
			if !returned {
				cancel()
			}
		}()
		defer terminal.RecoverGoroutine(surface)
		err := fn()
		returned = true
		return err
	}
}

func reloadLayout(tbl *streamtable.Table, f *config.File, err error) {
	if err != nil {
		log.Warn("config reload: %v", err)
		return
	}
	layout, err := f.Layout()
	if err != nil {
		log.Warn("config reload: %v", err)
		return
	}
	if err := tbl.SetLayout(layout); err != nil {
		log.Warn("applying reloaded layout: %v", err)
		return
	}
	log.Info("layout reloaded: %d columns", len(layout.Columns()))
}

func configPaths(explicit string) ([]string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return []string{explicit}, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return config.DefaultPaths(cwd), nil
}

// pickSource chooses the row source: flags first, then the configured
// command.
func pickSource(args cliArgs, file *config.File) (source, error) {
	set := 0
	for _, on := range []bool{args.exec != "", args.file != "", args.demo} {
		if on {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("-exec, -file and -demo are mutually exclusive")
	}

	switch {
	case args.exec != "":
		return execSource(args.exec), nil
	case args.file != "":
		return fileSource(args.file), nil
	case args.demo:
		if args.demoInterval <= 0 {
			return nil, fmt.Errorf("-demo-interval must be positive")
		}
		return demoSource(args.demoInterval), nil
	case file.Command != "":
		return execSource(file.Command), nil
	}
	return nil, fmt.Errorf("nothing to stream: use -exec, -file, -demo or set command in the config")
}

// bindCtrlCQuit adds ctrl+c to quit unless the config already uses it.
// Raw mode swallows SIGINT, so this is the only way ctrl+c ends a session.
func bindCtrlCQuit(km *streamtable.Keymap) {
	if _, taken := km.Lookup(key.Ctrl('c')); taken {
		return
	}
	tokens := append(km.Tokens(streamtable.ActionQuit), "ctrl+c")
	if err := km.Bind(streamtable.ActionQuit, tokens...); err != nil {
		log.Warn("binding ctrl+c: %v", err)
	}
}

// setupLog routes logging to path, or discards it: the table owns the
// terminal while it runs.
func setupLog(path string) (func(), error) {
	if path == "" {
		prev := log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	prev := log.SetOutput(f)
	return func() {
		log.SetOutput(prev)
		_ = f.Close()
	}, nil
}

func maxRows(cfg streamtable.Config) int {
	if cfg.MaxRows == 0 {
		return streamtable.DefaultMaxRows
	}
	return cfg.MaxRows
}
