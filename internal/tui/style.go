package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func init() {
	// Plain output when not attached to a color-capable terminal
	if termenv.EnvColorProfile() == termenv.Ascii || !IsInteractive() {
		plain := lipgloss.NewStyle()
		warnStyle, errorStyle, successStyle, dimStyle = plain, plain, plain, plain
	}
}

// IsInteractive reports whether stdin and stdout are attached to a terminal.
// Confirmation prompts and spinners are only shown in interactive runs.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// Dim renders s in a de-emphasized style
func Dim(s string) string {
	return dimStyle.Render(s)
}
