package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/scrubsnap/internal/config"
)

// Layout holds the paths of the original snapshot and its anonymized copy.
type Layout struct {
	SourceDir    string
	SourceHTML   string
	SourceAssets string
	OutputDir    string
	OutputHTML   string
	OutputAssets string
}

// NewLayout derives the snapshot paths from cfg.
func NewLayout(cfg *config.Config) Layout {
	title := cfg.SnapshotTitle
	newTitle := cfg.ReplacementTitle()

	return Layout{
		SourceDir:    cfg.SourceDir,
		SourceHTML:   filepath.Join(cfg.SourceDir, title+config.HTMLExtension),
		SourceAssets: filepath.Join(cfg.SourceDir, title+config.AssetDirSuffix),
		OutputDir:    cfg.OutputDir,
		OutputHTML:   filepath.Join(cfg.OutputDir, newTitle+config.HTMLExtension),
		OutputAssets: filepath.Join(cfg.OutputDir, newTitle+config.AssetDirSuffix),
	}
}

// CheckSeparate returns ErrOutputOverlapsSource when writing the output
// would touch the source snapshot. Paths are compared after symbolic links
// are resolved, so a link to the source directory is refused too.
func (l Layout) CheckSeparate() error {
	paths := make([]string, 0, 6)
	for _, p := range []string{l.SourceDir, l.SourceHTML, l.SourceAssets, l.OutputDir, l.OutputHTML, l.OutputAssets} {
		resolved, err := resolvePath(p)
		if err != nil {
			return fmt.Errorf("%w: resolve %s: %w", ErrIOFailure, p, err)
		}
		paths = append(paths, resolved)
	}
	srcDir, srcHTML, srcAssets := paths[0], paths[1], paths[2]
	outDir, outHTML, outAssets := paths[3], paths[4], paths[5]

	switch {
	case outDir == srcDir:
		return fmt.Errorf("%w: %s is the source directory", ErrOutputOverlapsSource, l.OutputDir)
	case outHTML == srcHTML, sameFile(l.OutputHTML, l.SourceHTML):
		return fmt.Errorf("%w: %s is the source document", ErrOutputOverlapsSource, l.OutputHTML)
	case within(outHTML, srcAssets):
		return fmt.Errorf("%w: %s is inside the source assets", ErrOutputOverlapsSource, l.OutputHTML)
	case within(outAssets, srcAssets), within(srcAssets, outAssets), within(srcHTML, outAssets):
		return fmt.Errorf("%w: %s overlaps the source snapshot", ErrOutputOverlapsSource, l.OutputAssets)
	}
	return nil
}

// resolvePath returns the absolute form of path with symbolic links
// resolved. Trailing components that do not exist yet are kept as given.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	dir, rest := abs, ""
	for {
		resolved, err := filepath.EvalSymlinks(dir)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// within reports whether path is parent or lies below it.
func within(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// sameFile reports whether a and b both exist and are the same file,
// which also catches hard links.
func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
