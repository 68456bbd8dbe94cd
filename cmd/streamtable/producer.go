// ABOUTME: Row sources for the CLI: a shell command, a file, or synthetic demo rows
// ABOUTME: NDJSON object lines are decoded with easyjson's lexer; any other line fills the message column

package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/exec"
	"time"

	"github.com/mailru/easyjson/jlexer"

	"github.com/mauromedda/streamtable/internal/log"
	"github.com/mauromedda/streamtable/pkg/streamtable"
)

const (
	timeFormat  = "15:04:05.000"
	maxLineSize = 1 << 20
)

// source feeds rows to emit until it runs dry or ctx is done.
type source func(ctx context.Context, emit func(streamtable.Row)) error

// decodeLine turns one input line into a row. A JSON object maps its
// fields to columns by name; values may be plain scalars, {"value","color"}
// objects or arrays of those. Anything else becomes a timestamped message.
func decodeLine(line []byte, now time.Time) streamtable.Row {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if row, err := decodeObject(trimmed); err == nil {
			return row
		}
	}
	return streamtable.Row{
		"time":    now.Format(timeFormat),
		"message": string(line),
	}
}

func decodeObject(data []byte) (streamtable.Row, error) {
	l := jlexer.Lexer{Data: data}
	row := streamtable.Row{}

	l.Delim('{')
	for !l.IsDelim('}') {
		name := l.String()
		l.WantColon()
		row[name] = l.Interface()
		l.WantComma()
	}
	l.Delim('}')
	l.Consumed()

	if err := l.Error(); err != nil {
		return nil, fmt.Errorf("decoding row: %w", err)
	}
	return row, nil
}

// scanLines emits one row per line of r.
func scanLines(ctx context.Context, r io.Reader, emit func(streamtable.Row)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		emit(decodeLine(sc.Bytes(), time.Now()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading rows: %w", err)
	}
	return nil
}

func fileSource(path string) source {
	return func(ctx context.Context, emit func(streamtable.Row)) error {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		if err := scanLines(ctx, f, emit); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Debug("finished reading %s", path)
		return nil
	}
}

// execSource runs command under sh and streams its stdout. The command's
// exit status is shown as a final row rather than ending the session.
func execSource(command string) source {
	return func(ctx context.Context, emit func(streamtable.Row)) error {
		cmd := exec.CommandContext(ctx, "sh", "-c", command)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("piping %q: %w", command, err)
		}
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("starting %q: %w", command, err)
		}
		log.Info("started %q (pid %d)", command, cmd.Process.Pid)

		scanErr := scanLines(ctx, stdout, emit)
		waitErr := cmd.Wait()
		if ctx.Err() != nil {
			return nil
		}
		if scanErr != nil {
			return fmt.Errorf("%q: %w", command, scanErr)
		}
		if waitErr != nil {
			log.Warn("command %q: %v", command, waitErr)
			emit(exitRow(waitErr, time.Now()))
			return nil
		}
		log.Info("command %q exited", command)
		return nil
	}
}

func exitRow(err error, now time.Time) streamtable.Row {
	return streamtable.Row{
		"time":    now.Format(timeFormat),
		"level":   streamtable.Colored{Value: "EXIT", Color: "red"},
		"message": err.Error(),
	}
}

type demoLevel struct {
	name  string
	color string
}

var (
	demoLevels   = []demoLevel{{"INFO", "green"}, {"INFO", "green"}, {"INFO", "green"}, {"WARN", "yellow"}, {"ERR", "red"}}
	demoServices = []string{"api", "auth", "billing", "search", "worker"}
	demoPaths    = []string{"/v1/users", "/v1/orders", "/healthz", "/v1/search", "/v1/invoices"}
)

// demoSource emits one synthetic request-log row per interval.
func demoSource(interval time.Duration) source {
	return func(ctx context.Context, emit func(streamtable.Row)) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for seq := 1; ; seq++ {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				emit(demoRow(seq, now, rand.IntN))
			}
		}
	}
}

func demoRow(seq int, now time.Time, intn func(int) int) streamtable.Row {
	lvl := demoLevels[intn(len(demoLevels))]
	svc := demoServices[intn(len(demoServices))]
	path := demoPaths[intn(len(demoPaths))]
	ms := 5 + intn(400)

	return streamtable.Row{
		"time":  now.Format(timeFormat),
		"level": streamtable.Colored{Value: lvl.name, Color: lvl.color},
		"message": []streamtable.Colored{
			{Value: svc, Color: 33},
			{Value: fmt.Sprintf(" #%d GET %s ", seq, path)},
			{Value: fmt.Sprintf("%dms", ms), Color: latencyColor(ms)},
		},
	}
}

func latencyColor(ms int) string {
	switch {
	case ms >= 300:
		return "red"
	case ms >= 150:
		return "yellow"
	}
	return "green"
}
