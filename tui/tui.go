// Package tui provides the interactive player screen.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/playlist"
)

// Options encapsulates what the player screen drives and shows.
type Options struct {
	Controller Controller
	Playlist   *playlist.Playlist
	Artwork    *artwork.Provider
}

// Run shows the player screen until the user quits. The controller's
// coordinator must already be running. The current playlist track starts
// playing immediately.
func Run(options *Options) error {
	bubble := newBubble(options)

	options.Controller.SetEmitter(bubble.forward)
	defer func() {
		options.Controller.SetEmitter(nil)
		close(bubble.quit)
	}()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
