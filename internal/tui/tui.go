package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/recolor/internal/ui"
	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/recolor"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type progressMsg struct {
	current, total int
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	app      *recolor.App
	program  *tea.Program
	spinner  spinner.Model
	state    state
	progress progressMsg
	summary  summaryMsg
	err      error
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
)

func New(app *recolor.App) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
	}
}

// SetProgram wires export progress from the app into the running program.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.app.SetProgressCallback(func(current, total int) {
		p.Send(progressMsg{current: current, total: total})
	})
}

// Err returns the error the app finished with, if any.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case progressMsg:
		m.progress = msg
		return m, nil

	case summaryMsg:
		m.state = stateSummary
		m.summary = msg
		return m, tea.Quit

	case errorMsg:
		m.state = stateError
		m.err = msg.err
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.state {
	case stateProcessing:
		if m.progress.total > 0 {
			return fmt.Sprintf("%s Exporting... [%d/%d]", m.spinner.View(), m.progress.current, m.progress.total)
		}
		return fmt.Sprintf("%s Processing...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	case stateSummary:
		return m.renderSummary()
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder
	s := m.summary.Summary

	if s.Message != "" {
		b.WriteString(headerStyle.Render(s.Message))
		b.WriteString("\n\n")
	}

	hasContent := false
	if s.Scan != nil {
		hasContent = true
		b.WriteString(successStyle.Render(fmt.Sprintf("Scanned %s:", s.Scan.SourceDir)))
		b.WriteString(fmt.Sprintf("\n  %d SVG file(s), %d other file(s)\n", s.Scan.TotalSvgCount, s.Scan.NonSvgCount))
		for _, svg := range s.Scan.PreviewSvgs {
			b.WriteString(fmt.Sprintf("  %s\n", faintStyle.Render(svg.Path)))
		}
		if len(s.Colors) > 0 {
			b.WriteString(successStyle.Render(fmt.Sprintf("Colors (%d):", len(s.Colors))))
			b.WriteString("\n")
			for _, c := range s.Colors {
				b.WriteString(fmt.Sprintf("  %s\n", ui.ColorLine(c)))
			}
		}
	}
	if s.Export != nil {
		hasContent = true
		for _, mapping := range s.Mappings {
			b.WriteString(fmt.Sprintf("  %s\n", ui.MappingLine(mapping)))
		}
		b.WriteString(successStyle.Render("Exported:"))
		b.WriteString(fmt.Sprintf("\n  %s\n", pathStyle.Render(s.Export.OutputDir)))
		b.WriteString(fmt.Sprintf("  %d SVG file(s) recolored, %d file(s) copied\n", s.Export.SvgsProcessed, s.Export.FilesCopied))
	}
	if len(s.Reverted) > 0 {
		hasContent = true
		b.WriteString(successStyle.Render("Reverted:"))
		b.WriteString("\n")
		for _, p := range s.Reverted {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(p)))
		}
	}
	if len(s.Restored) > 0 {
		hasContent = true
		b.WriteString(successStyle.Render("Restored:"))
		b.WriteString("\n")
		for _, p := range s.Restored {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(p)))
		}
	}

	if !hasContent && s.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	summary, err := m.app.Execute()
	if err != nil {
		var detailed *recolor.DetailedError
		if errors.As(err, &detailed) {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		return errorMsg{err}
	}
	return summaryMsg{
		Summary: summary,
	}
}
