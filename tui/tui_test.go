package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lyra-cli/lyra/artwork"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/lyrics"
	"github.com/lyra-cli/lyra/player"
	"github.com/lyra-cli/lyra/playlist"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type fakeController struct {
	played   []player.Track
	toggles  int
	stops    int
	seeks    []float64
	volumes  []int
	snapshot player.Snapshot
	emitter  player.Emitter
	err      error
}

func (f *fakeController) Play(track player.Track) error {
	f.played = append(f.played, track)
	return f.err
}

func (f *fakeController) Toggle() error {
	f.toggles++
	return f.err
}

func (f *fakeController) Stop() error {
	f.stops++
	return f.err
}

func (f *fakeController) SeekBy(delta float64) error {
	f.seeks = append(f.seeks, delta)
	return f.err
}

func (f *fakeController) AdjustVolume(delta int) error {
	f.volumes = append(f.volumes, delta)
	return f.err
}

func (f *fakeController) Snapshot() player.Snapshot { return f.snapshot }

func (f *fakeController) SetEmitter(emitter player.Emitter) { f.emitter = emitter }

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func newTestBubble() (*statefulBubble, *fakeController) {
	for _, path := range []string{"/queue/a.mp3", "/queue/b.mp3", "/queue/c.mp3"} {
		lo.Must0(filesystem.API().WriteFile(path, nil, 0644))
	}

	pl := playlist.New(playlist.Options{})
	pl.Add("/queue")

	ctrl := &fakeController{}
	b := newBubble(&Options{Controller: ctrl, Playlist: pl, Artwork: artwork.NewProvider()})
	b.resize(80, 40)
	return b, ctrl
}

func TestBubble(t *testing.T) {
	filesystem.SetMemMapFs()
	viper.Set(key.PlayerSeekStep, 5)
	viper.Set(key.PlayerAutoplay, true)
	viper.Set(key.TUILyricContext, 1)
	viper.Set(key.IconsVariant, "plain")

	Convey("Given a player screen over three tracks", t, func() {
		b, ctrl := newTestBubble()

		Convey("Init plays the current track", func() {
			b.Init()
			So(ctrl.played, ShouldHaveLength, 1)
			So(ctrl.played[0].Locator, ShouldEqual, "/queue/a.mp3")
		})

		Convey("Transport keys reach the controller", func() {
			b.Update(keyPress(" "))
			b.Update(keyPress("s"))
			b.Update(keyPress("right"))
			b.Update(keyPress("-"))
			So(ctrl.toggles, ShouldEqual, 1)
			So(ctrl.stops, ShouldEqual, 1)
			So(ctrl.seeks, ShouldResemble, []float64{5})
			So(ctrl.volumes, ShouldResemble, []int{-volumeStep})
		})

		Convey("Next and previous move through the queue", func() {
			b.Update(keyPress("n"))
			b.Update(keyPress("p"))
			b.Update(keyPress("p"))
			So(lo.Map(ctrl.played, func(t player.Track, _ int) string { return t.Locator }), ShouldResemble,
				[]string{"/queue/b.mp3", "/queue/a.mp3", "/queue/c.mp3"})
		})

		Convey("A finished track plays the next one", func() {
			b.Update(eventMsg{Kind: player.Finished})
			So(ctrl.played, ShouldHaveLength, 1)
			So(ctrl.played[0].Locator, ShouldEqual, "/queue/b.mp3")

			Convey("Unless the queue is over", func() {
				b.playlist.Select(2)
				b.Update(eventMsg{Kind: player.Finished})
				So(ctrl.played, ShouldHaveLength, 1)
			})
		})

		Convey("Autoplay can be turned off", func() {
			viper.Set(key.PlayerAutoplay, false)
			defer viper.Set(key.PlayerAutoplay, true)

			b.Update(eventMsg{Kind: player.Finished})
			So(ctrl.played, ShouldBeEmpty)
		})

		Convey("The queue plays the selected track", func() {
			b.Update(keyPress("tab"))
			So(b.state, ShouldEqual, queueState)

			b.Update(keyPress("j"))
			b.Update(keyPress("enter"))
			So(b.state, ShouldEqual, playerState)
			So(ctrl.played[len(ctrl.played)-1].Locator, ShouldEqual, "/queue/b.mp3")
		})

		Convey("A closed coordinator shows the error screen", func() {
			ctrl.err = player.ErrClosed
			_, cmd := b.Update(keyPress(" "))
			So(cmd, ShouldNotBeNil)

			b.Update(errors.New("boom"))
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "boom")

			b.Update(keyPress("esc"))
			So(b.state, ShouldEqual, playerState)
		})

		Convey("The lyric window follows the snapshot", func() {
			ctrl.snapshot = player.Snapshot{
				State:      player.Playing,
				Title:      "Dawn",
				Duration:   10,
				Progress:   0.5,
				HasLyrics:  true,
				LyricIndex: 2,
				Lyrics: []lyrics.Entry{
					{PTS: 0, Text: "zero"},
					{PTS: 1000, Text: "one"},
					{PTS: 2000, Text: "two"},
					{PTS: 3000, Text: "three"},
					{PTS: 4000, Text: "four"},
				},
			}
			b.Update(eventMsg{Kind: player.LyricIndexChanged})

			view := b.View()
			So(view, ShouldContainSubstring, "Dawn")
			So(view, ShouldContainSubstring, "one")
			So(view, ShouldContainSubstring, "three")
			So(view, ShouldNotContainSubstring, "zero")
			So(view, ShouldNotContainSubstring, "four")
		})
	})

	Convey("Progress events are dropped when the backlog is full", t, func() {
		b, _ := newTestBubble()
		for i := 0; i < eventBacklog; i++ {
			b.forward(player.Event{Kind: player.ProgressChanged})
		}
		b.forward(player.Event{Kind: player.ProgressChanged})
		So(len(b.events), ShouldEqual, eventBacklog)

		Convey("While a finished event waits until the screen quits", func() {
			close(b.quit)
			b.forward(player.Event{Kind: player.Finished})
			So(len(b.events), ShouldEqual, eventBacklog)
		})
	})
}
