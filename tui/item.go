// Package tui provides the interactive player screen.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lyra-cli/lyra/icon"
	"github.com/lyra-cli/lyra/player"
	"github.com/lyra-cli/lyra/style"
	"github.com/lyra-cli/lyra/util"
)

// listItem implements list.Item for a queued track.
type listItem struct {
	index   int
	track   player.Track
	playing bool
}

func (t *listItem) Title() string {
	title := t.FilterValue()
	if t.playing {
		title = fmt.Sprintf("%s %s", title, lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Music)))
	}
	return title
}

func (t *listItem) Description() string {
	var parts []string
	if t.track.Performer != "" {
		parts = append(parts, t.track.Performer)
	}
	if t.track.Album != "" {
		parts = append(parts, style.Italic(t.track.Album))
	}
	if t.track.Duration > 0 {
		parts = append(parts, style.Faint(util.FormatSeconds(t.track.Duration)))
	}
	if len(parts) == 0 {
		return style.Faint(filepath.Dir(t.track.Locator))
	}
	return strings.Join(parts, " • ")
}

func (t *listItem) FilterValue() string {
	if t.track.Title != "" {
		return t.track.Title
	}
	return util.FileStem(t.track.Locator)
}
