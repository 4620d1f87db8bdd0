package snapshot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/scrubsnap/internal/model"
)

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RequireInput returns ErrInputNotFound if path does not exist.
func RequireInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return fmt.Errorf("%w: stat %s: %w", ErrIOFailure, path, err)
	}
	return nil
}

// ReadDocument loads the whole document at path into memory.
func ReadDocument(path string) (*model.Document, error) {
	if err := RequireInput(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided snapshot path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrIOFailure, path, err)
	}

	return model.NewDocument(path, string(data)), nil
}

// WriteDocument writes doc to path in a single write, creating parent
// directories as needed.
func WriteDocument(path string, doc *model.Document) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("%w: create directory %s: %w", ErrIOFailure, dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(doc.Content), 0600); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIOFailure, path, err)
	}
	return nil
}

// CopyFile copies src to dst, preserving the source permission bits and
// modification time.
func CopyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrIOFailure, src, err)
	}

	if err := copyFileContents(src, dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: copy %s: %w", ErrIOFailure, src, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("%w: chtimes %s: %w", ErrIOFailure, dst, err)
	}
	return nil
}

func copyFileContents(src, dst string, perm fs.FileMode) (err error) {
	in, err := os.Open(src) //nolint:gosec // Path comes from the snapshot layout
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm) //nolint:gosec // Path comes from the snapshot layout
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// CopyTree copies the directory src to dst recursively. An existing dst is
// removed first, so the result mirrors src instead of merging into it.
// Symbolic links are skipped.
func CopyTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrIOFailure, dst, err)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: walk %s: %w", ErrIOFailure, path, walkErr)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIOFailure, err)
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, 0750); err != nil {
				return fmt.Errorf("%w: create directory %s: %w", ErrIOFailure, target, err)
			}
			return nil
		case d.Type()&fs.ModeSymlink != 0:
			return nil
		default:
			return CopyFile(path, target)
		}
	})
}
