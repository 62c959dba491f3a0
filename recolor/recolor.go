package recolor

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"

	"github.com/sokinpui/recolor/cli"
	"github.com/sokinpui/recolor/internal/fs"
	"github.com/sokinpui/recolor/internal/parser"
	"github.com/sokinpui/recolor/internal/source"
	"github.com/sokinpui/recolor/internal/state"
	"github.com/sokinpui/recolor/internal/ui"
	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/palette"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App orchestrates the entire application logic.
type App struct {
	cfg              *cli.Config
	stateManager     *state.Manager
	sourceProvider   *source.SourceProvider
	progressCallback ProgressUpdate
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = "."
	}
	return &App{
		cfg:            cfg,
		sourceProvider: source.New(),
	}, nil
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SetSourceProvider replaces where --paste mappings are read from.
func (a *App) SetSourceProvider(sp *source.SourceProvider) {
	a.sourceProvider = sp
}

// Execute executes the main application logic based on parsed flags.
func (a *App) Execute() (summary model.Summary, err error) {
	// Centralized panic recovery.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	switch {
	case a.cfg.Revert:
		return a.Revert()
	case a.cfg.Redo:
		return a.Redo()
	case a.cfg.ThemeName != "":
		mappings, err := a.collectMappings()
		if err != nil {
			return model.Summary{}, err
		}
		return a.Export(mappings)
	default:
		return a.Scan()
	}
}

// Scan reads the theme and extracts the colors of its largest SVGs.
func (a *App) Scan() (model.Summary, error) {
	scan, err := fs.ScanDirectory(a.cfg.SourceDir, a.cfg.PreviewCount)
	if err != nil {
		return model.Summary{}, err
	}

	summary := model.Summary{
		Scan:   scan,
		Colors: palette.ExtractColorsFromMultiple(scan.PreviewSvgs),
	}
	if scan.TotalSvgCount == 0 {
		summary.Message = "No SVG files found. Nothing to recolor."
	}
	return summary, nil
}

// Export writes a recolored copy of the theme and records it in the history.
func (a *App) Export(mappings []model.ColorMapping) (model.Summary, error) {
	if len(mappings) == 0 {
		ui.Warning("No color mappings given. The theme is copied unchanged.")
	}

	result, err := fs.ExportTheme(a.cfg.SourceDir, fs.ExportOptions{
		OutputRoot: a.cfg.OutputRoot,
		ThemeName:  a.cfg.ThemeName,
		Mappings:   mappings,
		Progress:   a.progressCallback,
	})
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to export theme: %w", err)
	}

	manager, err := a.history()
	if err == nil {
		var sourceDir string
		if sourceDir, err = filepath.Abs(a.cfg.SourceDir); err == nil {
			err = manager.RecordExport(result.OutputDir, sourceDir)
		}
	}
	if err != nil {
		// The export itself succeeded; only revert is unavailable.
		ui.Warning("Could not record export history, revert will not be available: %v", err)
	}

	return model.Summary{
		Message:  fmt.Sprintf("Exported theme '%s'.", a.cfg.ThemeName),
		Mappings: mappings,
		Export:   result,
	}, nil
}

// Revert moves the last exported theme into the trash.
func (a *App) Revert() (model.Summary, error) {
	manager, err := a.history()
	if err != nil {
		return model.Summary{}, err
	}
	reverted, err := manager.Revert()
	if errors.Is(err, model.ErrNoHistory) {
		return model.Summary{Message: "No export to revert."}, nil
	}
	if err != nil {
		return model.Summary{Reverted: reverted}, err
	}
	return model.Summary{Message: "Reverted last export.", Reverted: reverted}, nil
}

// Redo restores the last reverted theme.
func (a *App) Redo() (model.Summary, error) {
	manager, err := a.history()
	if err != nil {
		return model.Summary{}, err
	}
	restored, err := manager.Redo()
	if errors.Is(err, model.ErrNoHistory) {
		return model.Summary{Message: "No export to redo."}, nil
	}
	if err != nil {
		return model.Summary{Restored: restored}, err
	}
	return model.Summary{Message: "Redid last reverted export.", Restored: restored}, nil
}

// collectMappings gathers --map values followed by pasted mappings.
func (a *App) collectMappings() ([]model.ColorMapping, error) {
	mappings := make([]model.ColorMapping, 0, len(a.cfg.Mappings))
	for _, raw := range a.cfg.Mappings {
		m, err := parser.ParseMapping(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --map value: %w", err)
		}
		mappings = append(mappings, m)
	}

	if !a.cfg.Paste {
		return mappings, nil
	}

	content, err := a.sourceProvider.GetContent()
	if err != nil {
		return nil, err
	}
	pasted, err := parser.ParseMappings(content)
	if err != nil {
		return nil, fmt.Errorf("invalid pasted mappings: %w", err)
	}
	return append(mappings, pasted...), nil
}

// history opens the state manager on first use so scans never touch it.
func (a *App) history() (*state.Manager, error) {
	if a.stateManager != nil {
		return a.stateManager, nil
	}
	manager, err := state.New(a.cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state manager: %w", err)
	}
	a.stateManager = manager
	return manager, nil
}
