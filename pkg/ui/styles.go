// Package ui holds the CLI's terminal presentation: color palette,
// lipgloss styles and the banner. Styling degrades automatically on
// dumb or non-TTY outputs.
package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color palette.
var (
	Primary   = lipgloss.Color("#7D56F4") // purple
	Secondary = lipgloss.Color("#00D4AA") // teal

	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")
)

// Pre-configured styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Error)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

var (
	colorOnce sync.Once
	colorOK   bool
)

// ColorTerminal reports whether stderr is a color-capable terminal.
func ColorTerminal() bool {
	colorOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stderr.Fd())) {
			return
		}
		colorOK = termenv.NewOutput(os.Stderr).Profile != termenv.Ascii
	})
	return colorOK
}

// PrintSection prints a styled section header to stderr.
func PrintSection(title string) {
	if ColorTerminal() {
		fmt.Fprintln(os.Stderr, SectionStyle.Render("== "+title+" =="))
		return
	}
	fmt.Fprintln(os.Stderr, "== "+title+" ==")
}

// Errorf prints a styled error line to stderr.
func Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if ColorTerminal() {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+msg)
		return
	}
	fmt.Fprintln(os.Stderr, "error: "+msg)
}

// Warnf prints a styled warning line to stderr.
func Warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if ColorTerminal() {
		fmt.Fprintln(os.Stderr, WarnStyle.Render("warning: ")+msg)
		return
	}
	fmt.Fprintln(os.Stderr, "warning: "+msg)
}
