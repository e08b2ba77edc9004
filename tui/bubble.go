// Package tui provides the interactive player screen.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/internal/ui"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/player"
	"github.com/lyra-cli/lyra/playlist"
	"github.com/lyra-cli/lyra/style"
	"github.com/lyra-cli/lyra/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// eventBacklog bounds the coordinator events waiting for the screen.
const eventBacklog = 256

// artworkCells is the rendered cover width in terminal cells.
const artworkCells = 16

// Controller is the part of the coordinator the screen drives.
type Controller interface {
	Play(track player.Track) error
	Toggle() error
	Stop() error
	SeekBy(delta float64) error
	AdjustVolume(delta int) error
	Snapshot() player.Snapshot
	SetEmitter(emitter player.Emitter)
}

// statefulBubble holds the screen state and the components it renders.
type statefulBubble struct {
	state   state
	keymap  *statefulKeymap
	showAll bool

	queueC    list.Model
	progressC progress.Model
	helpC     help.Model

	controller Controller
	playlist   *playlist.Playlist
	artwork    *artwork.Provider

	events chan player.Event
	quit   chan struct{}

	snapshot player.Snapshot

	artworkVersion  uint64
	artworkRendered string

	lastError error

	width, height int
	notifier      *ui.Model
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// forward is the coordinator's emitter. It runs on the coordinator goroutine
// and must not block on the screen: progress updates are dropped when the
// backlog is full since the next snapshot carries them anyway.
func (b *statefulBubble) forward(event player.Event) {
	switch event.Kind {
	case player.Finished, player.Error, player.TrackChanged:
		select {
		case b.events <- event:
		case <-b.quit:
		}
	default:
		select {
		case b.events <- event:
		default:
		}
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.queueC.SetSize(listWidth, listHeight)
	b.queueC.Help.Width = listWidth

	b.progressC.Width = styledWidth
	if viper.GetBool(key.TUIShowArtwork) {
		b.progressC.Width = util.Max(styledWidth-artworkCells-2, 10)
	}

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// refreshQueue rebuilds the queue list, marking the track being played.
func (b *statefulBubble) refreshQueue() tea.Cmd {
	playing := b.playlist.Index()
	items := lo.Map(b.playlist.Tracks(), func(t player.Track, i int) list.Item {
		return &listItem{index: i, track: t, playing: i == playing}
	})
	cmd := b.queueC.SetItems(items)
	b.queueC.Select(playing)
	return cmd
}

func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		keymap:     keymap,
		controller: options.Controller,
		playlist:   options.Playlist,
		artwork:    options.Artwork,
		events:     make(chan player.Event, eventBacklog),
		quit:       make(chan struct{}),
		notifier:   &ui.Model{},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.queueC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.queueC.KeyMap = keymap.forList()
	bubble.queueC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.queueC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.queueC.Title = "Queue"
	bubble.queueC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)
	bubble.queueC.Styles.NoItems = paddingStyle
	bubble.queueC.SetStatusBarItemName("track", "tracks")
	bubble.queueC.SetShowPagination(false)
	bubble.queueC.SetFilteringEnabled(false)

	bubble.helpC = help.New()
	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	bubble.setState(playerState)
	bubble.snapshot = options.Controller.Snapshot()

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
