package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders entry identifiers and picker titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight renders identifier columns in tables.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim renders secondary text such as entry kinds and counts.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders field values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// status selects the icon and color of a status line.
type status int

const (
	statusDone status = iota
	statusWarn
	statusNote
)

var statusMarks = map[status]string{
	statusDone: lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	statusWarn: lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	statusNote: lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

// printStatus writes a one-line status message. Callers pass stderr so
// that stdout carries only results.
func printStatus(w io.Writer, s status, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s == statusWarn {
		msg = lipgloss.NewStyle().Foreground(colorYellow).Render(msg)
	}
	fmt.Fprintf(w, "%s %s\n", statusMarks[s], msg)
}

// printDetail writes an indented dim line under a status message.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue writes a fixed-width label followed by its value. An empty
// key continues the previous field.
func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", styleLabel.Render(key), StyleValue.Render(value))
}

// printCount writes "N things" on a dim line below a table.
func printCount(w io.Writer, n int, singular, plural string) {
	noun := plural
	if n == 1 {
		noun = singular
	}
	printDetail(w, "%d %s", n, noun)
}

// renderTable writes rows as a rounded lipgloss table. The first column
// holds KEGG identifiers and is highlighted.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return StyleHighlight.Padding(0, 1)
			default:
				return StyleValue.Padding(0, 1)
			}
		})
	fmt.Fprintln(w, t.Render())
}
