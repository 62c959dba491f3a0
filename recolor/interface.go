package recolor

import (
	"fmt"

	"github.com/sokinpui/recolor/cli"
	"github.com/sokinpui/recolor/model"
)

// Config for using recolor as a library.
type Config struct {
	// Number of largest SVGs to read colors from. 0 reads all of them.
	PreviewCount int
	// Directory themes are exported into. Empty means ~/.local/share/icons.
	OutputRoot string
	// Directory holding the export history. Empty means ~/.local/state/recolor.
	StateDir string
}

// Scan scans dir and returns the scan result together with the colors of its
// previewed SVGs, darkest first.
func Scan(dir string, config Config) (*model.ScanResult, []model.HexColor, error) {
	app, err := New(&cli.Config{SourceDir: dir, PreviewCount: config.PreviewCount})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize recolor app: %w", err)
	}

	summary, err := app.Scan()
	if err != nil {
		return nil, nil, err
	}
	return summary.Scan, summary.Colors, nil
}

// Export writes a copy of the theme at dir named themeName with mappings applied.
func Export(dir, themeName string, mappings []model.ColorMapping, config Config) (*model.ExportResult, error) {
	app, err := New(&cli.Config{
		SourceDir:  dir,
		ThemeName:  themeName,
		OutputRoot: config.OutputRoot,
		StateDir:   config.StateDir,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recolor app: %w", err)
	}

	summary, err := app.Export(mappings)
	if err != nil {
		return nil, err
	}
	return summary.Export, nil
}
