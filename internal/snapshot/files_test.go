package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/nao1215/scrubsnap/internal/model"
)

// TestNewLayout tests path derivation from the snapshot title.
func TestNewLayout(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SourceDir = "in"
	cfg.OutputDir = "out"

	l := NewLayout(cfg)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"source html", l.SourceHTML, filepath.Join("in", "Edit crew - CYSM Sea Dragons - revolutioniseSPORT.html")},
		{"source assets", l.SourceAssets, filepath.Join("in", "Edit crew - CYSM Sea Dragons - revolutioniseSPORT_files")},
		{"output html", l.OutputHTML, filepath.Join("out", "Edit crew - Blue River Sharks - revolutioniseSPORT.html")},
		{"output assets", l.OutputAssets, filepath.Join("out", "Edit crew - Blue River Sharks - revolutioniseSPORT_files")},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, tt.got)
		}
	}
}

// TestReadDocument tests document loading.
func TestReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrInputNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.html"))
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("expected ErrInputNotFound, got %v", err)
		}
	})

	t.Run("reads whole file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		if err := os.WriteFile(path, []byte("<p>hello</p>"), 0600); err != nil {
			t.Fatal(err)
		}

		doc, err := ReadDocument(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Content != "<p>hello</p>" || doc.Path != path {
			t.Errorf("unexpected document %+v", doc)
		}
	})
}

// TestWriteDocument tests document writing.
func TestWriteDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "page.html")
	if err := WriteDocument(path, model.NewDocument("x", "content")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("expected content, got %q", data)
	}
}

// TestCopyTree tests recursive directory copies.
func TestCopyTree(t *testing.T) {
	t.Parallel()

	t.Run("copies nested files", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "src")
		dst := filepath.Join(t.TempDir(), "dst")
		mustWrite(t, filepath.Join(src, "a.css"), "a")
		mustWrite(t, filepath.Join(src, "sub", "b.js"), "b")

		if err := CopyTree(src, dst); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertContent(t, filepath.Join(dst, "a.css"), "a")
		assertContent(t, filepath.Join(dst, "sub", "b.js"), "b")
	})

	t.Run("replaces existing destination instead of merging", func(t *testing.T) {
		t.Parallel()

		src := filepath.Join(t.TempDir(), "src")
		dst := filepath.Join(t.TempDir(), "dst")
		mustWrite(t, filepath.Join(src, "new.css"), "new")
		mustWrite(t, filepath.Join(dst, "stale.css"), "stale")

		if err := CopyTree(src, dst); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if Exists(filepath.Join(dst, "stale.css")) {
			t.Error("expected stale file to be removed")
		}
		assertContent(t, filepath.Join(dst, "new.css"), "new")
	})

	t.Run("missing source returns ErrIOFailure", func(t *testing.T) {
		t.Parallel()

		err := CopyTree(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "dst"))
		if !errors.Is(err, ErrIOFailure) {
			t.Errorf("expected ErrIOFailure, got %v", err)
		}
	})
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func assertContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s: expected %q, got %q", path, want, data)
	}
}

// TestDigest tests content fingerprints.
func TestDigest(t *testing.T) {
	t.Parallel()

	// SHA3-256 of the empty string.
	const empty = "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"

	if got := Digest(""); got != empty {
		t.Errorf("expected %s, got %s", empty, got)
	}
	if Digest("a") == Digest("b") {
		t.Error("expected different digests for different content")
	}
	if len(Digest("abc")) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(Digest("abc")))
	}
}
