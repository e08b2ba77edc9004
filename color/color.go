// Package color holds the terminal colors shared by the CLI and the player.
package color

import "github.com/charmbracelet/lipgloss"

// New returns a color from an ANSI index or a hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors follow the user's terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiPurple = New("13")
)

// Orange marks the play/pause key in help.
var Orange = New("#ffb703")
