package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/recolor/model"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(t.TempDir())
	require.NoError(t, err)

	tick := time.Unix(1700000000, 0)
	m.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return m
}

func makeTheme(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.theme"), []byte("[Icon Theme]"), 0644))
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/state", "recolor"), dir)
}

func TestRevertAndRedo(t *testing.T) {
	m := newTestManager(t)
	icons := t.TempDir()
	theme := filepath.Join(icons, "Teal")
	makeTheme(t, theme)

	require.NoError(t, m.RecordExport(theme, "/usr/share/icons/Papirus"))

	reverted, err := m.Revert()
	require.NoError(t, err)
	assert.Equal(t, []string{theme}, reverted)
	_, err = os.Stat(theme)
	assert.True(t, os.IsNotExist(err))

	_, err = m.Revert()
	assert.ErrorIs(t, err, model.ErrNoHistory)

	restored, err := m.Redo()
	require.NoError(t, err)
	assert.Equal(t, []string{theme}, restored)
	_, err = os.Stat(filepath.Join(theme, "index.theme"))
	assert.NoError(t, err)

	_, err = m.Redo()
	assert.ErrorIs(t, err, model.ErrNoHistory)
}

func TestRedoRefusesToOverwrite(t *testing.T) {
	m := newTestManager(t)
	theme := filepath.Join(t.TempDir(), "Teal")
	makeTheme(t, theme)

	require.NoError(t, m.RecordExport(theme, "src"))
	_, err := m.Revert()
	require.NoError(t, err)

	makeTheme(t, theme)
	_, err = m.Redo()
	assert.ErrorIs(t, err, model.ErrThemeExists)
}

func TestWriteDropsRevertedEntries(t *testing.T) {
	m := newTestManager(t)
	icons := t.TempDir()
	first := filepath.Join(icons, "First")
	second := filepath.Join(icons, "Second")
	makeTheme(t, first)

	require.NoError(t, m.RecordExport(first, "src"))
	_, err := m.Revert()
	require.NoError(t, err)

	makeTheme(t, second)
	require.NoError(t, m.RecordExport(second, "src"))

	entries, index := m.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 0, index)
	assert.Equal(t, second, entries[0].Operations[0].Path)

	_, err = m.Redo()
	assert.ErrorIs(t, err, model.ErrNoHistory)
}

func TestStatePersists(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, m.RecordExport("/icons/A", "/src/a"))
	require.NoError(t, m.RecordExport("/icons/B", "/src/b"))

	reloaded, err := New(dir)
	require.NoError(t, err)
	entries, index := reloaded.Entries()
	assert.Equal(t, 1, index)
	require.Len(t, entries, 2)
	assert.Equal(t, Operation{Action: ActionExport, Path: "/icons/B", SourceDir: "/src/b"}, entries[1].Operations[0])
}

func TestLoadRejectsCorruptState(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, stateFileName), []byte("not-a-number"), 0644))
	_, err := New(dir)
	assert.Error(t, err)
}
