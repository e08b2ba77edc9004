// Package tui provides the interactive player screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/color"
	"github.com/lyra-cli/lyra/icon"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/style"
	"github.com/lyra-cli/lyra/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case playerState:
		output = b.viewPlayer()
	case queueState:
		output = b.viewQueue()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewQueue() string {
	return listExtraPaddingStyle.Render(b.queueC.View())
}

// viewArtwork renders the cover, reusing the last rendering until it changes.
func (b *statefulBubble) viewArtwork() string {
	if b.artwork == nil || !viper.GetBool(key.TUIShowArtwork) {
		return ""
	}

	if v := b.artwork.Version(); v != b.artworkVersion || b.artworkRendered == "" {
		b.artworkVersion = v
		b.artworkRendered = artwork.Render(b.artwork.Image(), artworkCells, artworkCells/2)
	}
	return b.artworkRendered
}

func (b *statefulBubble) viewHeader(width int) []string {
	s := b.snapshot
	fit := func(text string) string { return truncate.StringWithTail(text, uint(util.Max(width, 0)), "…") }

	title := lo.CoalesceOrEmpty(s.Title, s.Track.Title, util.FileStem(s.Track.Locator))
	if title == "" {
		title = style.Faint("nothing queued")
	}

	lines := []string{
		fit(fmt.Sprintf("%s %s", status(s), style.Bold(style.Fg(color.Purple)(title)))),
	}
	if s.Performer != "" {
		lines = append(lines, fit(s.Performer))
	}
	if s.Album != "" {
		lines = append(lines, fit(style.Italic(s.Album)))
	}

	lines = append(lines,
		"",
		b.progressC.View(),
		fmt.Sprintf("%s / %s  %s  %s",
			util.FormatSeconds(s.Elapsed()),
			util.FormatSeconds(s.Duration),
			style.Faint(volume(s.Volume)),
			style.Faint(fmt.Sprintf("%d/%d", b.playlist.Index()+1, b.playlist.Len())),
		),
	)

	return lines
}

// viewLyrics renders the lines around the one being sung.
func (b *statefulBubble) viewLyrics() []string {
	s := b.snapshot
	if !s.HasLyrics {
		return []string{style.Faint(icon.Get(icon.Lyrics) + " no lyrics")}
	}

	context := viper.GetInt(key.TUILyricContext)
	from := util.Max(s.LyricIndex-context, 0)
	to := min(s.LyricIndex+context+1, len(s.Lyrics))

	current := lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor)

	var lines []string
	for i := from; i < to; i++ {
		text := wrap.String(s.Lyrics[i].Text, util.Max(b.width, 1))
		if i == s.LyricIndex && s.Elapsed()*1000 >= float64(s.Lyrics[i].PTS) {
			text = current.Render(text)
		} else {
			text = style.Faint(text)
		}
		lines = append(lines, text)
	}

	return lines
}

func (b *statefulBubble) viewPlayer() string {
	cover := b.viewArtwork()

	headerWidth := b.width
	if cover != "" {
		headerWidth = util.Max(b.width-artworkCells-2, 10)
	}

	header := strings.Join(b.viewHeader(headerWidth), "\n")
	if cover != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, cover, "  ", header)
	}

	lines := append([]string{style.Title("Now Playing"), "", header, ""}, b.viewLyrics()...)
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(b.lastError.Error())
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " Playback failed:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
