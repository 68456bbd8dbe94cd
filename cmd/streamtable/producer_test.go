// ABOUTME: Tests for line decoding and the file, exec and demo row sources
// ABOUTME: Checks decoded rows through streamtable.NewCell so colors are verified as the table sees them

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/streamtable/pkg/streamtable"
	"github.com/mauromedda/streamtable/pkg/tui/color"
)

var fixedNow = time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, time.UTC)

func TestDecodeLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		column    string
		wantText  string
		wantColor color.Ref
	}{
		{name: "plain text", line: "disk almost full", column: "message", wantText: "disk almost full"},
		{name: "plain text time", line: "disk almost full", column: "time", wantText: "12:30:45.123"},
		{name: "json string", line: `{"level":"WARN"}`, column: "level", wantText: "WARN"},
		{name: "json number", line: `{"n": 42}`, column: "n", wantText: "42"},
		{name: "json colored", line: `{"level":{"value":"ERR","color":"red"}}`, column: "level", wantText: "ERR", wantColor: color.Named("red")},
		{name: "json indexed color", line: `{"host":{"value":"db1","color":202}}`, column: "host", wantText: "db1", wantColor: color.Index(202)},
		{name: "json composite", line: `{"msg":[{"value":"a","color":"red"},"b"]}`, column: "msg", wantText: "ab"},
		{name: "leading space", line: `  {"a":"x"}`, column: "a", wantText: "x"},
		{name: "broken json is text", line: `{"a":`, column: "message", wantText: `{"a":`},
		{name: "trailing garbage is text", line: `{"a":"x"} junk`, column: "message", wantText: `{"a":"x"} junk`},
		{name: "json array is text", line: `[1,2]`, column: "message", wantText: `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			row := decodeLine([]byte(tt.line), fixedNow)
			cell := streamtable.NewCell(row[tt.column])
			if cell.Value() != tt.wantText {
				t.Errorf("%s = %q, want %q (row %v)", tt.column, cell.Value(), tt.wantText, row)
			}
			if cell.Color() != tt.wantColor {
				t.Errorf("%s color = %v, want %v", tt.column, cell.Color(), tt.wantColor)
			}
		})
	}
}

func TestDecodeLine_CompositeKeepsColors(t *testing.T) {
	t.Parallel()

	row := decodeLine([]byte(`{"msg":[{"value":"a","color":"red"},{"value":"b","color":34}]}`), fixedNow)
	cell := streamtable.NewCell(row["msg"])
	if !cell.IsComposite() {
		t.Fatalf("msg is not composite: %v", row["msg"])
	}
	comps := cell.Components()
	if len(comps) != 2 || comps[0].Color() != color.Named("red") || comps[1].Color() != color.Index(34) {
		t.Errorf("components = %+v", comps)
	}
}

func collect(t *testing.T, src source) []streamtable.Row {
	t.Helper()
	var rows []streamtable.Row
	if err := src(context.Background(), func(r streamtable.Row) { rows = append(rows, r) }); err != nil {
		t.Fatalf("source: %v", err)
	}
	return rows
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rows.ndjson")
	data := `{"level":"INFO","message":"one"}` + "\nplain two\n" + `{"level":"ERR","message":"three"}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	rows := collect(t, fileSource(path))
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	var msgs []string
	for _, r := range rows {
		msgs = append(msgs, streamtable.NewCell(r["message"]).Value())
	}
	if got := strings.Join(msgs, ","); got != "one,plain two,three" {
		t.Errorf("messages = %q", got)
	}
}

func TestFileSource_Missing(t *testing.T) {
	t.Parallel()

	err := fileSource(filepath.Join(t.TempDir(), "nope"))(context.Background(), func(streamtable.Row) {})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestExecSource(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	rows := collect(t, execSource(`printf 'a\n{"level":"WARN"}\n'`))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	if streamtable.NewCell(rows[0]["message"]).Value() != "a" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if streamtable.NewCell(rows[1]["level"]).Value() != "WARN" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestExecSource_FailureBecomesRow(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	rows := collect(t, execSource("echo bye; exit 3"))
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(rows), rows)
	}
	last := rows[1]
	if lvl := streamtable.NewCell(last["level"]); lvl.Value() != "EXIT" || lvl.Color() != color.Named("red") {
		t.Errorf("exit level = %q/%v", lvl.Value(), lvl.Color())
	}
	if msg := streamtable.NewCell(last["message"]).Value(); !strings.Contains(msg, "exit status 3") {
		t.Errorf("exit message = %q", msg)
	}
}

func TestExecSource_StopsOnCancel(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("needs sh")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- execSource("while true; do echo tick; sleep 0.01; done")(ctx, func(streamtable.Row) {})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("err = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("exec source did not stop")
	}
}

func TestDemoRow(t *testing.T) {
	t.Parallel()

	// Always picks the last entry of each list and the maximum latency.
	intn := func(n int) int { return n - 1 }
	row := demoRow(7, fixedNow, intn)

	if got := streamtable.NewCell(row["time"]).Value(); got != "12:30:45.123" {
		t.Errorf("time = %q", got)
	}
	lvl := streamtable.NewCell(row["level"])
	if lvl.Value() != "ERR" || lvl.Color() != color.Named("red") {
		t.Errorf("level = %q/%v", lvl.Value(), lvl.Color())
	}
	msg := streamtable.NewCell(row["message"])
	if msg.Value() != "worker #7 GET /v1/invoices 404ms" {
		t.Errorf("message = %q", msg.Value())
	}
	if comps := msg.Components(); comps[2].Color() != color.Named("red") {
		t.Errorf("latency color = %v, want red", comps[2].Color())
	}
}

func TestDemoSource_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rows := make(chan streamtable.Row, 16)
	done := make(chan error, 1)
	go func() {
		done <- demoSource(time.Millisecond)(ctx, func(r streamtable.Row) {
			select {
			case rows <- r:
			default:
			}
		})
	}()

	select {
	case <-rows:
	case <-time.After(time.Second):
		t.Fatal("no demo row")
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("err = %v", err)
	}
}
