package executor

import (
	"os"

	"golang.org/x/term"
)

const (
	defaultColumns = 80
	// progressPrefix is the widest prefix written before a step title.
	progressPrefix = len("[STARTED] ")
)

// TitleWidth returns the room left for a step title on one stdout line.
func TitleWidth() int {
	columns := defaultColumns
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		columns = w
	}
	return columns - progressPrefix
}

// TruncateTitle shortens title to width runes, ending with an ellipsis when cut.
func TruncateTitle(title string, width int) string {
	runes := []rune(title)
	if width <= 0 || len(runes) <= width {
		return title
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
