package recolor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/recolor/model"
	"github.com/sokinpui/recolor/recolor"
)

func TestLibraryInterface(t *testing.T) {
	theme := newTheme(t)

	t.Run("Scan limits previews", func(t *testing.T) {
		scan, colors, err := recolor.Scan(theme, recolor.Config{PreviewCount: 1})
		require.NoError(t, err)
		require.Len(t, scan.PreviewSvgs, 1)
		assert.Equal(t, 2, scan.TotalSvgCount)
		// Only the larger 32px icon is read, so #fff from the 16px icon is absent.
		assert.Equal(t, []model.HexColor{"#000000", "#5294e2"}, colors)
	})

	t.Run("Export", func(t *testing.T) {
		icons := t.TempDir()
		mappings := []model.ColorMapping{{Original: "#000000", Replacement: "#333333"}}

		result, err := recolor.Export(theme, "Dim", mappings, recolor.Config{
			OutputRoot: icons,
			StateDir:   t.TempDir(),
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(icons, "Dim"), result.OutputDir)

		content, err := os.ReadFile(filepath.Join(icons, "Dim", "32/apps/term.svg"))
		require.NoError(t, err)
		assert.Contains(t, string(content), `stroke="#333333"`)
	})

	t.Run("Export rejects an invalid name", func(t *testing.T) {
		_, err := recolor.Export(theme, "a/b", nil, recolor.Config{OutputRoot: t.TempDir(), StateDir: t.TempDir()})
		assert.ErrorIs(t, err, model.ErrInvalidThemeName)
	})
}
