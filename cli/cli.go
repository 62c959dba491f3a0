package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// DefaultPreviewCount is how many of the largest SVGs are read for colors.
const DefaultPreviewCount = 5

// Config holds all the command-line flag values.
type Config struct {
	SourceDir    string
	ThemeName    string
	OutputRoot   string
	StateDir     string
	Mappings     []string
	Paste        bool
	PreviewCount int
	JSON         bool
	NoAnimation  bool
	Revert       bool
	Redo         bool
}

// ParseFlags defines and parses the process command-line flags using pflag.
func ParseFlags() (*Config, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args (without the program name) into a Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("recolor", pflag.ContinueOnError)

	// Define flags
	flags.StringVarP(&cfg.ThemeName, "name", "n", "", "Export a recolored copy of the theme under this name.")
	flags.StringVarP(&cfg.OutputRoot, "output", "o", "", "Directory to export themes into (default: ~/.local/share/icons).")
	flags.StringArrayVarP(&cfg.Mappings, "map", "m", []string{}, "Color mapping '#old=#new'. Repeat for several.")
	flags.BoolVarP(&cfg.Paste, "paste", "p", false, "Read additional mappings from stdin (pipe) or the clipboard.")
	flags.IntVar(&cfg.PreviewCount, "preview", DefaultPreviewCount, "Number of largest SVGs to read colors from (0 reads all).")
	flags.BoolVarP(&cfg.JSON, "json", "j", false, "Print the result as JSON to stdout.")
	flags.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the spinner and print plain output.")
	flags.StringVar(&cfg.StateDir, "state-dir", "", "Directory for export history (default: ~/.local/state/recolor).")

	// Mutually exclusive history group
	flags.BoolVarP(&cfg.Revert, "revert", "r", false, "Revert the last export (moves the theme to the trash).")
	flags.BoolVarP(&cfg.Redo, "redo", "R", false, "Redo the last reverted export.")

	flags.Usage = func() {
		fmt.Println("Usage: recolor [flags] [theme-dir]")
		fmt.Println("\nList the colors of an SVG icon theme, or export a recolored copy of it.")
		fmt.Println("\nExample: recolor /usr/share/icons/Papirus -n Papirus-Teal -m '#5294e2=#2aa198'")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	// Validate mutually exclusive flags
	if cfg.Revert && cfg.Redo {
		return nil, fmt.Errorf("error: --revert and --redo are mutually exclusive")
	}
	if (cfg.Revert || cfg.Redo) && cfg.ThemeName != "" {
		return nil, fmt.Errorf("error: --name cannot be combined with --revert or --redo")
	}
	if cfg.PreviewCount < 0 {
		return nil, fmt.Errorf("error: --preview must not be negative")
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
		cfg.SourceDir = "."
	case 1:
		cfg.SourceDir = rest[0]
	default:
		return nil, fmt.Errorf("error: expected one theme directory, got %d", len(rest))
	}

	return cfg, nil
}
