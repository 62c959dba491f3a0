package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/sokinpui/recolor/internal/ui"
	"github.com/sokinpui/recolor/model"
)

type svgEntry struct {
	path string
	size int64
}

// scanner walks a tree following symlinks. Each directory and each SVG is
// visited once per canonical path, which also breaks symlink cycles.
type scanner struct {
	seenDirs    map[string]struct{}
	seenFiles   map[string]struct{}
	svgs        []svgEntry
	nonSvgCount int
}

// ScanDirectory finds every SVG under root and loads the previewCount largest
// ones into memory. A previewCount of 0 or less loads all of them.
func ScanDirectory(root string, previewCount int) (*model.ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("'%s': %w", root, model.ErrNotDirectory)
	}

	canonicalRoot, err := canonicalPath(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", root, err)
	}

	s := &scanner{
		seenDirs:  map[string]struct{}{canonicalRoot: {}},
		seenFiles: make(map[string]struct{}),
	}
	if err := s.walk(root); err != nil {
		return nil, err
	}

	total := len(s.svgs)

	// Largest first; path keeps equal sizes in a stable order.
	sort.Slice(s.svgs, func(i, j int) bool {
		if s.svgs[i].size != s.svgs[j].size {
			return s.svgs[i].size > s.svgs[j].size
		}
		return s.svgs[i].path < s.svgs[j].path
	})
	if previewCount > 0 && len(s.svgs) > previewCount {
		s.svgs = s.svgs[:previewCount]
	}

	previews := make([]model.SvgFile, 0, len(s.svgs))
	for _, entry := range s.svgs {
		content, err := os.ReadFile(entry.path)
		if err != nil || !utf8.Valid(content) {
			ui.Warning("Skipping unreadable preview '%s'", entry.path)
			continue
		}
		previews = append(previews, model.SvgFile{
			Path:    entry.path,
			Size:    entry.size,
			Content: string(content),
		})
	}

	return &model.ScanResult{
		SourceDir:     root,
		PreviewSvgs:   previews,
		TotalSvgCount: total,
		NonSvgCount:   s.nonSvgCount,
	}, nil
}

func (s *scanner) walk(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// os.Stat follows symlinks, so linked directories are descended into.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat '%s': %w", path, err)
		}

		if info.IsDir() {
			canonical, err := canonicalPath(path)
			if err != nil {
				return fmt.Errorf("failed to resolve '%s': %w", path, err)
			}
			if _, seen := s.seenDirs[canonical]; seen {
				continue
			}
			s.seenDirs[canonical] = struct{}{}
			if err := s.walk(path); err != nil {
				return err
			}
			continue
		}

		if !IsSvg(path) {
			s.nonSvgCount++
			continue
		}

		canonical, err := canonicalPath(path)
		if err != nil {
			return fmt.Errorf("failed to resolve '%s': %w", path, err)
		}
		if _, seen := s.seenFiles[canonical]; seen {
			continue
		}
		s.seenFiles[canonical] = struct{}{}
		s.svgs = append(s.svgs, svgEntry{path: path, size: info.Size()})
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
