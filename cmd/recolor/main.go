package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/sokinpui/recolor/cli"
	"github.com/sokinpui/recolor/internal/tui"
	"github.com/sokinpui/recolor/internal/ui"
	"github.com/sokinpui/recolor/recolor"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	app, err := recolor.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Flags that print plain output and should not run the TUI.
	if cfg.JSON || cfg.NoAnimation {
		runPlain(app, cfg)
		return
	}

	model := tui.New(app)
	p := tea.NewProgram(model)
	model.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if model.Err() != nil {
		os.Exit(1)
	}
}

func runPlain(app *recolor.App, cfg *cli.Config) {
	var bar *ui.ProgressBar
	if !cfg.JSON {
		bar = ui.NewProgressBar(0, "Exporting")
		app.SetProgressCallback(bar.Set)
	}

	summary, err := app.Execute()
	if bar != nil && summary.Export != nil {
		bar.Finish()
	}
	if err != nil {
		var detailed *recolor.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		ui.Error("Error: %v", err)
		os.Exit(1)
	}

	if cfg.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			ui.Error("Error: %v", err)
			os.Exit(1)
		}
		return
	}
	ui.PrintSummary(summary)
}
