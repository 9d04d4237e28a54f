// Package logging provides tests for the JSONL journal and tail output.
package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewJournal tests creating a new journal.
func TestNewJournal(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := t.TempDir()

		j, err := NewJournal(baseDir, workDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer j.Close()

		if j.Dir == "" || j.SessionID == "" || j.LogPath == "" {
			t.Errorf("expected Dir, SessionID and LogPath to be set, got %+v", j)
		}
		if _, err := os.Stat(j.LogPath); err != nil {
			t.Errorf("journal file not created: %v", err)
		}
		if !strings.HasPrefix(j.Dir, baseDir) {
			t.Errorf("journal dir %s not under base dir %s", j.Dir, baseDir)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewJournal("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates nested directory", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "new-logs", "nested")

		j, err := NewJournal(baseDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer j.Close()

		if _, err := os.Stat(baseDir); err != nil {
			t.Errorf("journal directory not created: %v", err)
		}
	})
}

// TestJournalRecord tests that events are appended and read back.
func TestJournalRecord(t *testing.T) {
	j, err := NewJournal(t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events := []Event{
		{Type: EventAdd, TaskID: 1, Note: "Buy milk"},
		{Type: EventDelete, TaskID: 1},
		{Type: EventSave, File: "tasks.tsk"},
	}
	for _, e := range events {
		if err := j.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ReadEvents(j.LogPath)
	if err != nil {
		t.Fatalf("ReadEvents failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(got))
	}

	ids := make(map[string]bool)
	for i, e := range got {
		if e.Type != events[i].Type || e.TaskID != events[i].TaskID || e.Note != events[i].Note || e.File != events[i].File {
			t.Errorf("event %d: got %+v, want %+v", i, e, events[i])
		}
		if e.ID == "" {
			t.Errorf("event %d: expected an id", i)
		}
		if ids[e.ID] {
			t.Errorf("event %d: duplicate id %s", i, e.ID)
		}
		ids[e.ID] = true
		if e.Time.IsZero() {
			t.Errorf("event %d: expected a timestamp", i)
		}
	}
}

// TestJournalNil tests that a nil journal is a no-op.
func TestJournalNil(t *testing.T) {
	var j *Journal
	if err := j.Record(Event{Type: EventAdd}); err != nil {
		t.Errorf("Record on nil journal: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("Close on nil journal: %v", err)
	}
	if err := (&Journal{}).Close(); err != nil {
		t.Errorf("Close on journal with nil file: %v", err)
	}
}

// TestSlugify tests the slugify helper.
func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"simple", "simple"},
		{"Hello World", "Hello_World"},
		{"test-project", "test-project"},
		{"many   spaces", "many_spaces"},
		{"special@chars!", "special_chars"},
		{"", "project"},
		{"   ", "project"},
		{"___", "project"},
		{"test.-_project", "test.-_project"},
		{"test/directory", "test_directory"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := slugify(tt.input); got != tt.want {
				t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestHashPath tests the hashPath helper.
func TestHashPath(t *testing.T) {
	for _, input := range []string{"/path/to/project", "/another/path", ""} {
		got := hashPath(input)
		if len(got) != 8 {
			t.Errorf("hashPath(%q) length = %d, want 8", input, len(got))
		}
		if got != hashPath(input) {
			t.Errorf("hashPath(%q) not deterministic", input)
		}
		if input != "" && got == hashPath(input+"x") {
			t.Errorf("hashPath(%q) and hashPath(%q) produced same hash", input, input+"x")
		}
	}
}

// TestSessionID tests the sessionID helper.
func TestSessionID(t *testing.T) {
	id := sessionID()
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts separated by '-', got %d: %s", len(parts), id)
	}
	if _, err := time.Parse("20060102", parts[0]); err != nil {
		t.Errorf("first part not a valid date: %v", err)
	}
	if _, err := time.Parse("150405", parts[1]); err != nil {
		t.Errorf("second part not a valid time: %v", err)
	}
	if parts[2] == "" {
		t.Error("PID part is empty")
	}
}

// TestFindLogDir tests resolving the journal directory.
func TestFindLogDir(t *testing.T) {
	t.Run("resolves under base dir", func(t *testing.T) {
		baseDir := t.TempDir()
		logDir, err := FindLogDir(baseDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(logDir, baseDir) {
			t.Errorf("journal dir %s should be under base dir %s", logDir, baseDir)
		}
	})

	t.Run("matches journal location", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := t.TempDir()
		j, err := NewJournal(baseDir, workDir)
		if err != nil {
			t.Fatal(err)
		}
		defer j.Close()

		logDir, err := FindLogDir(baseDir, workDir)
		if err != nil {
			t.Fatal(err)
		}
		if logDir != j.Dir {
			t.Errorf("FindLogDir = %s, journal dir = %s", logDir, j.Dir)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		if _, err := FindLogDir("", t.TempDir()); err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
	})
}

// TestFindLatestLog tests picking the newest journal.
func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "" {
			t.Errorf("expected empty path, got %s", got)
		}
	})

	t.Run("picks newest jsonl", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "older.jsonl")
		newer := filepath.Join(dir, "newer.jsonl")
		other := filepath.Join(dir, "notes.txt")
		for _, p := range []string{older, newer, other} {
			if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		past := time.Now().Add(-time.Hour)
		if err := os.Chtimes(older, past, past); err != nil {
			t.Fatal(err)
		}
		future := time.Now().Add(time.Hour)
		if err := os.Chtimes(other, future, future); err != nil {
			t.Fatal(err)
		}

		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if got != newer {
			t.Errorf("expected %s, got %s", newer, got)
		}
	})
}

// TestFindSessions tests listing sessions newest first.
func TestFindSessions(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	names := []string{"20240101-000000-1.jsonl", "20240102-000000-2.jsonl", "ignored.json"}
	for i, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("{}\n"), 0644); err != nil {
			t.Fatal(err)
		}
		ts := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, ts, ts); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err := FindSessions(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "20240102-000000-2" || sessions[1].ID != "20240101-000000-1" {
		t.Errorf("unexpected order: %s, %s", sessions[0].ID, sessions[1].ID)
	}
}

// TestTailLog tests dumping a journal with and without a line limit.
func TestTailLog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	var content strings.Builder
	for i := 0; i < 50; i++ {
		content.WriteString(`{"type":"add","note":"` + strings.Repeat("x", 200) + `"}` + "\n")
	}
	if err := os.WriteFile(path, []byte(content.String()), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("whole file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 0, false); err != nil {
			t.Fatal(err)
		}
		if buf.String() != content.String() {
			t.Errorf("expected full content, got %d bytes", buf.Len())
		}
	})

	t.Run("last lines start on a line boundary", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, path, 5, false); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if out == "" || len(out) >= content.Len() {
			t.Fatalf("expected a strict suffix, got %d bytes", len(out))
		}
		if !strings.HasPrefix(out, `{"type":"add"`) {
			t.Errorf("output does not start at a line boundary: %q", out[:20])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, filepath.Join(dir, "missing.jsonl"), 0, false); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("follow stops on cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- TailLog(ctx, io.Discard, path, 0, true)
		}()
		time.Sleep(150 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("TailLog kept following after cancel")
		}
	})
}
