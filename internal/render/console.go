// Package render writes lint-recently's status lines and collected task
// output to the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/spachava753/lint-recently/internal/messages"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[91m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiDim    = "\x1b[2m"
)

// Console is the models.Logger used by the CLI. Log writes to stdout, Warn and
// Error to stderr. Lines are colored by their leading figure when the stream is
// a color-capable terminal.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	err      io.Writer
	outColor bool
	errColor bool
}

// NewConsole creates a console writing to stdout and stderr.
func NewConsole(stdout, stderr io.Writer) *Console {
	return &Console{
		out:      stdout,
		err:      stderr,
		outColor: supportsColor(stdout),
		errColor: supportsColor(stderr),
	}
}

func (c *Console) Log(msg string) {
	c.write(c.out, c.outColor, msg, "")
}

func (c *Console) Warn(msg string) {
	c.write(c.err, c.errColor, msg, ansiYellow)
}

func (c *Console) Error(msg string) {
	c.write(c.err, c.errColor, msg, ansiRed)
}

func (c *Console) write(w io.Writer, color bool, msg, fallback string) {
	if color {
		msg = colorize(msg, fallback)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(w, msg)
}

// colorize colors each line by its leading figure or progress marker. Lines
// without one get fallback, which may be empty.
func colorize(msg, fallback string) string {
	lines := strings.Split(msg, "\n")
	for i, line := range lines {
		color := lineColor(line, fallback)
		if color != "" && line != "" {
			lines[i] = color + line + ansiReset
		}
	}
	return strings.Join(lines, "\n")
}

func lineColor(line, fallback string) string {
	switch {
	case strings.HasPrefix(line, messages.FigureError), strings.HasPrefix(line, "[FAILED]"):
		return ansiRed
	case strings.HasPrefix(line, messages.FigureWarning):
		return ansiYellow
	case strings.HasPrefix(line, messages.FigureInfo):
		return ansiBlue
	case strings.HasPrefix(line, "[SUCCESS]"):
		return ansiGreen
	case strings.HasPrefix(line, "[SKIPPED]"), strings.HasPrefix(line, "[STARTED]"):
		return ansiDim
	}
	return fallback
}

func supportsColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
