package listview

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so style helpers can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// themeFg returns the given hex color for ANSI256+ terminals and a safe ANSI
// white (color 7) for 16-color or lower terminals.
func themeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme holds the precomputed styles the list renders rows with. Styles are
// created once at startup instead of per-frame.
type Theme struct {
	// Per-role row styles.
	Upward   lipgloss.Style
	Root     lipgloss.Style
	Current  lipgloss.Style
	Downward lipgloss.Style

	// Cursor is layered over the row under the selection bar.
	Cursor lipgloss.Style

	// Detail styles the secondary line when rows are taller than one line.
	Detail lipgloss.Style

	// Transient accents for rows still inside their animation window.
	Appearing lipgloss.Style
	Repainted lipgloss.Style
}

// DefaultTheme returns the stock drillist look.
func DefaultTheme() Theme {
	return Theme{
		Upward:    lipgloss.NewStyle().Foreground(themeFg("#7D8590")),
		Root:      lipgloss.NewStyle().Foreground(themeFg("#E6EDF3")),
		Current:   lipgloss.NewStyle().Foreground(themeFg("#79C0FF")).Bold(true),
		Downward:  lipgloss.NewStyle().Foreground(themeFg("#E6EDF3")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Detail:    lipgloss.NewStyle().Foreground(themeFg("#6E7681")),
		Appearing: lipgloss.NewStyle().Faint(true),
		Repainted: lipgloss.NewStyle().Italic(true),
	}
}
