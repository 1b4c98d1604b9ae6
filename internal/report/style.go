package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"segcheck/internal/consensus"
)

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type palette struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

func newPalette(w io.Writer, enabled bool) palette {
	return palette{enabled: enabled, renderer: lipgloss.NewRenderer(w)}
}

func (p palette) paint(value, color string, bold bool) string {
	if !p.enabled || value == "" {
		return value
	}
	return p.renderer.NewStyle().Foreground(lipgloss.Color(color)).Bold(bold).Render(value)
}

func (p palette) status(status consensus.Status) string {
	switch status {
	case consensus.StatusAccepted:
		return p.paint(string(status), "#5FD75F", false)
	case consensus.StatusRejected:
		return p.paint(string(status), "#FF6B6B", true)
	case consensus.StatusConflict:
		return p.paint(string(status), "#FFD75F", false)
	default:
		return p.paint(string(status), "#AAAAAA", false)
	}
}

func (p palette) delta(value float64, formatted string) string {
	switch {
	case value > 0:
		return p.paint(formatted, "#5FD75F", false)
	case value < 0:
		return p.paint(formatted, "#FF6B6B", false)
	default:
		return formatted
	}
}

func (p palette) sectionHeader(title string) string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return p.paint(line, "#5B8DEF", true) + "\n" + p.paint(rule, "#5B8DEF", false)
}

func (p palette) muted(value string) string {
	return p.paint(value, "#AAAAAA", false)
}
