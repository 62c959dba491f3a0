package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/palette"
)

type entryKind int

const (
	kindDir entryKind = iota
	kindSymlink
	kindSvg
	kindFile
)

// exportEntry is one item of the source tree, relative to the source root.
type exportEntry struct {
	src  string
	rel  string
	kind entryKind
	mode iofs.FileMode
}

// ExportOptions configures ExportTheme.
type ExportOptions struct {
	// OutputRoot is the directory the theme is created in. Empty means DefaultIconsDir.
	OutputRoot string
	ThemeName  string
	Mappings   []model.ColorMapping
	// Progress is called with the number of entries handled and the total.
	Progress func(current, total int)
}

// ExportTheme copies the tree at sourceDir into OutputRoot/ThemeName. SVG files
// are rewritten with the color mappings applied, symlinks are recreated and
// every other file is copied as is. An existing theme is never overwritten.
func ExportTheme(sourceDir string, opts ExportOptions) (*model.ExportResult, error) {
	if err := ValidateThemeName(opts.ThemeName); err != nil {
		return nil, err
	}

	root := opts.OutputRoot
	if root == "" {
		var err error
		if root, err = DefaultIconsDir(); err != nil {
			return nil, err
		}
	}
	outputDir, err := filepath.Abs(filepath.Join(ExpandHome(root), opts.ThemeName))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output dir: %w", err)
	}

	if _, err := os.Lstat(outputDir); err == nil {
		return nil, fmt.Errorf("theme '%s' at %s: %w", opts.ThemeName, outputDir, model.ErrThemeExists)
	}

	entries, err := collectEntries(sourceDir)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	result := &model.ExportResult{OutputDir: outputDir}
	total := len(entries)

	var progressCb func(int)
	if opts.Progress != nil {
		opts.Progress(0, total)
		progressCb = func(current int) {
			opts.Progress(current, total)
		}
	}

	processFn := func(entry exportEntry) error {
		dest := filepath.Join(outputDir, entry.rel)
		switch entry.kind {
		case kindDir:
			if err := os.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("failed to create directory '%s': %w", dest, err)
			}
		case kindSymlink:
			if err := copySymlink(entry.src, dest); err != nil {
				return err
			}
		case kindSvg:
			if err := recolorFile(entry.src, dest, entry.mode, opts.Mappings); err != nil {
				return err
			}
			result.SvgsProcessed++
		case kindFile:
			if err := copyFile(entry.src, dest, entry.mode); err != nil {
				return err
			}
			result.FilesCopied++
		}
		return nil
	}

	if err := processSequentially(entries, processFn, progressCb); err != nil {
		return result, err
	}
	return result, nil
}

// collectEntries lists the source tree without following symlinks. The root
// itself is resolved first so a linked theme directory is still exported.
func collectEntries(sourceDir string) ([]exportEntry, error) {
	root, err := filepath.EvalSymlinks(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", sourceDir, err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("'%s': %w", sourceDir, model.ErrNotDirectory)
	}

	var entries []exportEntry
	err = filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		entry := exportEntry{src: path, rel: rel}
		switch {
		case d.Type()&iofs.ModeSymlink != 0:
			entry.kind = kindSymlink
		case d.IsDir():
			entry.kind = kindDir
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			entry.mode = info.Mode().Perm()
			entry.kind = kindFile
			if IsSvg(path) {
				entry.kind = kindSvg
			}
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk '%s': %w", sourceDir, err)
	}
	return entries, nil
}

func copySymlink(src, dest string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fmt.Errorf("failed to read link '%s': %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	if err := os.Symlink(target, dest); err != nil {
		return fmt.Errorf("failed to create link '%s': %w", dest, err)
	}
	return nil
}

func recolorFile(src, dest string, mode iofs.FileMode, mappings []model.ColorMapping) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	replaced := palette.ApplyMappings(string(content), mappings)
	if err := os.WriteFile(dest, []byte(replaced), mode); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func copyFile(src, dest string, mode iofs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy error: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("copy error: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy error: %w", err)
	}
	return out.Close()
}
