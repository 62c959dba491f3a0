package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/palette"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// Swatch renders a small block filled with hex.
func Swatch(hex model.HexColor) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}

// ColorLine formats one extracted color: swatch, hex, luminance and nearest name.
func ColorLine(hex model.HexColor) string {
	return fmt.Sprintf("%s %s  %6.1f  %s", Swatch(hex), hex, palette.Luminance(hex), palette.NearestName(hex))
}

// MappingLine formats a mapping as "old -> new" with both swatches.
func MappingLine(m model.ColorMapping) string {
	return fmt.Sprintf("%s %s -> %s %s", Swatch(m.Original), m.Original, Swatch(m.Replacement), m.Replacement)
}

// --- Summaries ---

// PrintSummary writes a plain (non-TUI) rendering of summary.
func PrintSummary(summary model.Summary) {
	if summary.Message != "" {
		Header("%s", summary.Message)
	}
	if summary.Scan != nil {
		PrintScanSummary(summary.Scan, summary.Colors)
	}
	if summary.Export != nil {
		PrintExportSummary(summary.Export, summary.Mappings)
	}
	if len(summary.Reverted) > 0 {
		PrintHistorySummary("Reverted", summary.Reverted)
	}
	if len(summary.Restored) > 0 {
		PrintHistorySummary("Restored", summary.Restored)
	}
}

func PrintScanSummary(scan *model.ScanResult, colors []model.HexColor) {
	Header("\n--- Scan Summary ---")
	Info("Source: %s", scan.SourceDir)
	Info("%d SVG file(s), %d other file(s)", scan.TotalSvgCount, scan.NonSvgCount)

	if len(scan.PreviewSvgs) > 0 {
		Success("Previewed %d file(s):", len(scan.PreviewSvgs))
		for _, svg := range scan.PreviewSvgs {
			fmt.Printf("  - %s (%d bytes)\n", svg.Path, svg.Size)
		}
	}

	if len(colors) == 0 {
		Warning("No colors found.")
		return
	}
	Success("Found %d color(s):", len(colors))
	for _, c := range colors {
		fmt.Printf("  %s\n", ColorLine(c))
	}
}

func PrintExportSummary(export *model.ExportResult, mappings []model.ColorMapping) {
	Header("\n--- Export Summary ---")
	if len(mappings) > 0 {
		Info("Applied %d mapping(s):", len(mappings))
		for _, m := range mappings {
			fmt.Printf("  %s\n", MappingLine(m))
		}
	}
	Success("Exported theme to %s", export.OutputDir)
	Success("  %d SVG file(s) recolored, %d file(s) copied", export.SvgsProcessed, export.FilesCopied)
}

func PrintHistorySummary(action string, paths []string) {
	Header("\n--- %s ---", action)
	for _, p := range paths {
		Path("- %s", p)
	}
}

// --- Progress Bar ---

type ProgressBar struct {
	total   int
	prefix  string
	current int
}

func NewProgressBar(total int, prefix string) *ProgressBar {
	return &ProgressBar{total: total, prefix: prefix}
}

// Set moves the bar to current out of total.
func (p *ProgressBar) Set(current, total int) {
	p.current, p.total = current, total
	p.draw()
}

func (p *ProgressBar) Finish() {
	fmt.Fprintln(os.Stderr)
}

func (p *ProgressBar) draw() {
	if p.total == 0 {
		return
	}
	const barLength = 40
	percent := float64(p.current) / float64(p.total)
	filledLength := int(percent * barLength)
	bar := strings.Repeat("█", filledLength) + strings.Repeat("-", barLength-filledLength)

	percentStr := fmt.Sprintf("%.1f%%", percent*100)
	countStr := fmt.Sprintf("[%d/%d]", p.current, p.total)

	fmt.Fprintf(os.Stderr, "\r%s |%s| %s %s", p.prefix, bar, countStr, percentStr)
}
