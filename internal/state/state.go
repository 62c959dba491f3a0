package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sokinpui/recolor/model"
)

const (
	stateDirName  = "recolor"
	stateFileName = "history.recolor"
	TrashDir      = "trash"

	ActionExport = "export"
)

// Operation records one exported theme.
type Operation struct {
	Action    string
	Path      string // exported theme directory
	SourceDir string
}

// HistoryEntry represents one complete run of the tool.
type HistoryEntry struct {
	Timestamp  int64
	Operations []Operation
}

// State represents the entire state file.
type State struct {
	History      []HistoryEntry `json:"history"`
	CurrentIndex int            `json:"current_index"`
}

// Manager handles the lifecycle of the state file.
type Manager struct {
	statePath string
	state     *State
	StateDir  string
	now       func() time.Time
}

// DefaultDir returns $XDG_STATE_HOME/recolor, or ~/.local/state/recolor.
func DefaultDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, stateDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", stateDirName), nil
}

// New creates and loads a state manager rooted at stateDir. An empty stateDir
// means DefaultDir.
func New(stateDir string) (*Manager, error) {
	if stateDir == "" {
		var err error
		if stateDir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory: %w", err)
	}

	m := &Manager{
		statePath: filepath.Join(stateDir, stateFileName),
		StateDir:  stateDir,
		now:       time.Now,
	}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			m.state = &State{CurrentIndex: -1, History: []HistoryEntry{}}
			return nil
		}
		return err
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(content, "\n\n")

	if len(blocks) == 0 || strings.TrimSpace(blocks[0]) == "" {
		m.state = &State{CurrentIndex: -1, History: []HistoryEntry{}}
		return nil
	}

	// First block is current index
	index, err := strconv.Atoi(strings.TrimSpace(blocks[0]))
	if err != nil {
		return fmt.Errorf("invalid state file: could not parse current index: %w", err)
	}

	m.state = &State{CurrentIndex: index, History: []HistoryEntry{}}

	for _, block := range blocks[1:] {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")

		ts, err := strconv.ParseInt(lines[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid state file: could not parse timestamp from '%s': %w", lines[0], err)
		}

		entry := HistoryEntry{Timestamp: ts}
		opLines := lines[1:]
		if len(opLines)%3 != 0 {
			return fmt.Errorf("invalid state file: incomplete operation record")
		}
		for i := 0; i < len(opLines); i += 3 {
			entry.Operations = append(entry.Operations, Operation{
				Action:    opLines[i],
				Path:      opLines[i+1],
				SourceDir: opLines[i+2],
			})
		}
		m.state.History = append(m.state.History, entry)
	}

	if m.state.CurrentIndex >= len(m.state.History) {
		m.state.CurrentIndex = len(m.state.History) - 1
	}
	return nil
}

func (m *Manager) save() error {
	blocks := []string{strconv.Itoa(m.state.CurrentIndex)}

	for _, entry := range m.state.History {
		lines := []string{strconv.FormatInt(entry.Timestamp, 10)}
		for _, op := range entry.Operations {
			lines = append(lines, op.Action, op.Path, op.SourceDir)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	content := strings.Join(blocks, "\n\n")
	if err := os.WriteFile(m.statePath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// Write adds a new set of operations to the history, discarding any entries
// that were reverted and not redone.
func (m *Manager) Write(operations []Operation) error {
	if m.state.CurrentIndex < len(m.state.History)-1 {
		for _, entry := range m.state.History[m.state.CurrentIndex+1:] {
			os.RemoveAll(m.trashDir(entry))
		}
		m.state.History = m.state.History[:m.state.CurrentIndex+1]
	}

	m.state.History = append(m.state.History, HistoryEntry{
		Timestamp:  m.now().UTC().UnixNano(),
		Operations: operations,
	})
	m.state.CurrentIndex++
	return m.save()
}

// RecordExport records one exported theme as a history entry.
func (m *Manager) RecordExport(outputDir, sourceDir string) error {
	return m.Write([]Operation{{Action: ActionExport, Path: outputDir, SourceDir: sourceDir}})
}

// Revert moves the themes of the current entry into the trash and steps the
// history back. It returns the reverted theme directories.
func (m *Manager) Revert() ([]string, error) {
	if m.state.CurrentIndex < 0 {
		return nil, fmt.Errorf("nothing to revert: %w", model.ErrNoHistory)
	}
	entry := m.state.History[m.state.CurrentIndex]

	trash := m.trashDir(entry)
	if err := os.MkdirAll(trash, 0755); err != nil {
		return nil, fmt.Errorf("could not create trash directory: %w", err)
	}

	var reverted []string
	for _, op := range entry.Operations {
		if err := os.Rename(op.Path, trashPath(trash, op)); err != nil {
			return reverted, fmt.Errorf("failed to revert '%s': %w", op.Path, err)
		}
		reverted = append(reverted, op.Path)
	}

	m.state.CurrentIndex--
	return reverted, m.save()
}

// Redo moves the themes of the next entry back out of the trash.
func (m *Manager) Redo() ([]string, error) {
	next := m.state.CurrentIndex + 1
	if next >= len(m.state.History) {
		return nil, fmt.Errorf("nothing to redo: %w", model.ErrNoHistory)
	}
	entry := m.state.History[next]
	trash := m.trashDir(entry)

	var restored []string
	for _, op := range entry.Operations {
		if _, err := os.Lstat(op.Path); err == nil {
			return restored, fmt.Errorf("failed to redo '%s': %w", op.Path, model.ErrThemeExists)
		}
		if err := os.Rename(trashPath(trash, op), op.Path); err != nil {
			return restored, fmt.Errorf("failed to redo '%s': %w", op.Path, err)
		}
		restored = append(restored, op.Path)
	}
	os.Remove(trash)

	m.state.CurrentIndex = next
	return restored, m.save()
}

// Entries returns a copy of the recorded history and the current index.
func (m *Manager) Entries() ([]HistoryEntry, int) {
	entries := make([]HistoryEntry, len(m.state.History))
	copy(entries, m.state.History)
	return entries, m.state.CurrentIndex
}

func (m *Manager) trashDir(entry HistoryEntry) string {
	return filepath.Join(m.StateDir, TrashDir, strconv.FormatInt(entry.Timestamp, 10))
}

func trashPath(trash string, op Operation) string {
	return filepath.Join(trash, filepath.Base(op.Path))
}
