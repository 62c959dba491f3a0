package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokinpui/recolor/model"
)

const svgExt = ".svg"

// IsSvg reports whether path has an .svg extension, in any case.
func IsSvg(path string) bool {
	return strings.EqualFold(filepath.Ext(path), svgExt)
}

// DefaultIconsDir returns the directory user icon themes are installed into.
func DefaultIconsDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, "icons"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "icons"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ValidateThemeName rejects names that would not land directly inside the
// icons directory.
func ValidateThemeName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", model.ErrInvalidThemeName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", model.ErrInvalidThemeName, name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", model.ErrInvalidThemeName, name)
	}
	return nil
}

// processSequentially runs processFn over items in order, stopping at the
// first error, and reports progress after each item.
func processSequentially[T any](
	items []T,
	processFn func(item T) error,
	progressCb func(int),
) error {
	for i, item := range items {
		if err := processFn(item); err != nil {
			return err
		}
		if progressCb != nil {
			progressCb(i + 1)
		}
	}
	return nil
}
