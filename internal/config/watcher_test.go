// ABOUTME: Tests for the polling config watcher
// ABOUTME: Uses os.Chtimes to move mtimes deterministically instead of sleeping

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, path, body string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_Check(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "max_rows: 10\n", base)

	var got []*File
	var gotErr []error
	w := NewWatcher([]string{path}, time.Hour, func(f *File, err error) {
		got = append(got, f)
		gotErr = append(gotErr, err)
	})

	if w.Check() {
		t.Fatal("Check() = true before any change")
	}

	writeConfig(t, path, "max_rows: 20\n", base.Add(time.Minute))
	if !w.Check() {
		t.Fatal("Check() = false after mtime moved")
	}
	if len(got) != 1 || gotErr[0] != nil || got[0].MaxRows != 20 {
		t.Fatalf("onChange got %+v, %v", got, gotErr)
	}

	if w.Check() {
		t.Error("Check() = true twice for one change")
	}
}

func TestWatcher_ReportsParseError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	base := time.Now().Add(-time.Hour)
	writeConfig(t, path, "max_rows: 10\n", base)

	var gotErr error
	w := NewWatcher([]string{path}, time.Hour, func(_ *File, err error) { gotErr = err })

	writeConfig(t, path, "no_such_key: 1\n", base.Add(time.Minute))
	w.Check()
	if !errors.Is(gotErr, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", gotErr)
	}
}

func TestWatcher_FileAppearsAndDisappears(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	calls := 0
	w := NewWatcher([]string{path}, time.Hour, func(*File, error) { calls++ })

	writeConfig(t, path, "header_color: red\n", time.Now())
	if !w.Check() {
		t.Error("new file not detected")
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Error("removed file not detected")
	}
	if calls != 2 {
		t.Errorf("onChange calls = %d, want 2", calls)
	}
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	w := NewWatcher(nil, 5*time.Millisecond, func(*File, error) {})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
