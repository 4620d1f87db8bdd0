package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/scrubsnap/internal/database"
	"github.com/nao1215/scrubsnap/internal/model"
)

func seedHistory(t *testing.T, dir string, n int) {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	for i := range n {
		r := model.NewRunReport("in.html", "out.html")
		r.DateRun = time.Date(2026, 5, 1, 12, i, 0, 0, time.UTC)
		r.InputDigest = strings.Repeat("ab", 32)
		r.Names.Set("Jane Doe", "Pat Quinn")
		if _, err := db.SaveRun(t.Context(), r); err != nil {
			t.Fatal(err)
		}
	}
}

// TestHistoryCmd tests the history command.
func TestHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		stdout, err := executeRoot(t, "history", "--history-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "No runs recorded") {
			t.Errorf("unexpected output %q", stdout)
		}
	})

	t.Run("lists runs with limit", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, 3)

		stdout, err := executeRoot(t, "history", "--history-dir", dir, "-n", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "(2 runs)") {
			t.Errorf("expected 2 runs, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "abababababab") {
			t.Error("expected short input digest")
		}
		if strings.Contains(stdout, "Jane Doe") {
			t.Error("expected no real names in history")
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		seedHistory(t, dir, 1)

		var buf bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&buf)
		cmd.SetArgs([]string{"history", "--history-dir", dir, "--json"})
		if err := cmd.Execute(); err != nil {
			t.Fatal(err)
		}

		var runs []database.RunRecord
		if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(runs) != 1 || runs[0].NameCount != 1 {
			t.Errorf("unexpected runs %+v", runs)
		}
	})
}

// TestHistoryCmdRunID tests showing one run by ID.
func TestHistoryCmdRunID(t *testing.T) {
	t.Parallel()

	// Subtests share one database file and run in sequence.
	dir := t.TempDir()
	seedHistory(t, dir, 2)

	t.Run("shows the selected run", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "--history-dir", dir, "--id", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"Run 2\n",
			"Input:          in.html",
			"Input digest:   " + strings.Repeat("ab", 32),
			"Output digest:  -",
			"Names:          1",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
			}
		}
		if strings.Contains(stdout, "Jane Doe") {
			t.Error("expected no real names in history")
		}
	})

	t.Run("json output", func(t *testing.T) {
		stdout, err := executeRoot(t, "history", "--history-dir", dir, "--id", "1", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var run database.RunRecord
		if err := json.Unmarshal([]byte(stdout), &run); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if run.ID != 1 {
			t.Errorf("expected run 1, got %d", run.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := executeRoot(t, "history", "--history-dir", dir, "--id", "99")
		if !errors.Is(err, database.ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})
}

// TestShortDigest tests digest shortening.
func TestShortDigest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"", "-"},
		{"abc", "abc"},
		{"0123456789abcdef", "0123456789ab"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := shortDigest(tt.input); got != tt.want {
				t.Errorf("shortDigest(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
