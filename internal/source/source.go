package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/sokinpui/recolor/internal/ui"
)

// SourceProvider retrieves mapping text from piped stdin or the clipboard.
type SourceProvider struct {
	stdin         io.Reader
	isPiped       func() bool
	readClipboard func() (string, error)
}

// New creates a SourceProvider reading from the process stdin and the
// system clipboard.
func New() *SourceProvider {
	return &SourceProvider{
		stdin:         os.Stdin,
		isPiped:       stdinIsPiped,
		readClipboard: clipboard.ReadAll,
	}
}

// NewWith creates a SourceProvider over the given reader and clipboard
// function. A nil clipboard function disables the clipboard fallback.
func NewWith(stdin io.Reader, piped bool, readClipboard func() (string, error)) *SourceProvider {
	return &SourceProvider{
		stdin:         stdin,
		isPiped:       func() bool { return piped },
		readClipboard: readClipboard,
	}
}

// GetContent returns stdin when it is piped, otherwise the clipboard.
// Whitespace-only content is returned as "".
func (sp *SourceProvider) GetContent() (string, error) {
	if sp.isPiped() {
		ui.Header("--- Reading mappings from stdin ---")
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		if strings.TrimSpace(string(content)) == "" {
			return "", nil
		}
		return string(content), nil
	}

	if sp.readClipboard == nil {
		return "", nil
	}

	ui.Header("--- Reading mappings from clipboard ---")
	content, err := sp.readClipboard()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		ui.Warning("Clipboard is empty. Nothing to read.")
		return "", nil
	}
	return content, nil
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
