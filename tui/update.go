// Package tui provides the interactive player screen.
package tui

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lyra-cli/lyra/icon"
	"github.com/lyra-cli/lyra/internal/ui"
	"github.com/lyra-cli/lyra/key"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/player"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// eventMsg carries a coordinator event into the update loop.
type eventMsg player.Event

// volumeStep is the volume change of one key press.
const volumeStep = 5

func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.refreshQueue(), b.playCurrent(), b.waitForEvent())
}

// waitForEvent blocks until the coordinator reports something.
func (b *statefulBubble) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-b.events:
			return eventMsg(event)
		case <-b.quit:
			return nil
		}
	}
}

// play hands track to the coordinator.
func (b *statefulBubble) play(track mo.Option[player.Track]) tea.Cmd {
	t, ok := track.Get()
	if !ok {
		return nil
	}
	if err := b.controller.Play(t); err != nil {
		return func() tea.Msg { return err }
	}
	return b.refreshQueue()
}

func (b *statefulBubble) playCurrent() tea.Cmd {
	return b.play(b.playlist.Current())
}

// command wraps a controller call so a closed coordinator surfaces as an error.
func command(err error) tea.Cmd {
	if err != nil {
		return func() tea.Msg { return err }
	}
	return nil
}

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmd = uiCmd
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, cmd
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case progress.FrameMsg:
		model, frameCmd := b.progressC.Update(msg)
		b.progressC = model.(progress.Model)
		return b, tea.Batch(cmd, frameCmd)
	case eventMsg:
		return b, tea.Batch(cmd, b.handleEvent(player.Event(msg)), b.waitForEvent())
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case queueState:
		return b.updateQueue(msg, cmd)
	case errorState:
		return b.updateError(msg, cmd)
	default:
		return b.updatePlayer(msg, cmd)
	}
}

// handleEvent refreshes the snapshot and reacts to the end of a track.
func (b *statefulBubble) handleEvent(event player.Event) tea.Cmd {
	b.snapshot = b.controller.Snapshot()

	switch event.Kind {
	case player.ProgressChanged:
		return b.progressC.SetPercent(b.snapshot.Progress)
	case player.TrackChanged:
		return b.refreshQueue()
	case player.Error:
		log.Error(event.Err)
		return ui.Notify(icon.Get(icon.Fail) + " " + event.Err.Error())
	case player.Finished:
		if !viper.GetBool(key.PlayerAutoplay) {
			return nil
		}
		next := b.playlist.Next(false)
		if next.IsAbsent() {
			return ui.Notify(icon.Get(icon.Success) + " end of queue")
		}
		return b.play(next)
	}

	return nil
}

func (b *statefulBubble) handleTransport(msg tea.KeyMsg) (tea.Cmd, bool) {
	seekStep := viper.GetFloat64(key.PlayerSeekStep)

	switch {
	case bubblesKey.Matches(msg, b.keymap.toggle):
		return command(b.controller.Toggle()), true
	case bubblesKey.Matches(msg, b.keymap.stop):
		return command(b.controller.Stop()), true
	case bubblesKey.Matches(msg, b.keymap.seekBack):
		return command(b.controller.SeekBy(-seekStep)), true
	case bubblesKey.Matches(msg, b.keymap.seekForward):
		return command(b.controller.SeekBy(seekStep)), true
	case bubblesKey.Matches(msg, b.keymap.volumeUp):
		return command(b.controller.AdjustVolume(volumeStep)), true
	case bubblesKey.Matches(msg, b.keymap.volumeDown):
		return command(b.controller.AdjustVolume(-volumeStep)), true
	case bubblesKey.Matches(msg, b.keymap.next):
		return b.play(b.playlist.Next(true)), true
	case bubblesKey.Matches(msg, b.keymap.previous):
		return b.play(b.playlist.Previous()), true
	}

	return nil, false
}

func (b *statefulBubble) updatePlayer(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, cmd
	}

	if transport, handled := b.handleTransport(keyMsg); handled {
		return b, tea.Batch(cmd, transport)
	}

	switch {
	case bubblesKey.Matches(keyMsg, b.keymap.quit):
		return b, tea.Quit
	case bubblesKey.Matches(keyMsg, b.keymap.queue):
		b.setState(queueState)
		return b, tea.Batch(cmd, b.refreshQueue())
	case bubblesKey.Matches(keyMsg, b.keymap.showHelp):
		b.showAll = !b.showAll
		b.helpC.ShowAll = b.showAll
	}

	return b, cmd
}

func (b *statefulBubble) updateQueue(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.back, b.keymap.queue):
			b.setState(playerState)
			return b, cmd
		case bubblesKey.Matches(keyMsg, b.keymap.confirm):
			item, ok := b.queueC.SelectedItem().(*listItem)
			if !ok {
				return b, cmd
			}
			b.setState(playerState)
			return b, tea.Batch(cmd, b.play(b.playlist.Select(item.index)))
		case bubblesKey.Matches(keyMsg, b.keymap.toggle):
			return b, tea.Batch(cmd, command(b.controller.Toggle()))
		}
	}

	var listCmd tea.Cmd
	b.queueC, listCmd = b.queueC.Update(msg)
	return b, tea.Batch(cmd, listCmd)
}

func (b *statefulBubble) updateError(msg tea.Msg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(keyMsg, b.keymap.back):
			b.lastError = nil
			b.setState(playerState)
		case bubblesKey.Matches(keyMsg, b.keymap.quit):
			return b, tea.Quit
		}
	}
	return b, cmd
}

// status describes the coordinator state for the header.
func status(s player.Snapshot) string {
	switch s.State {
	case player.Playing:
		return icon.Get(icon.Play)
	case player.Suspended:
		return icon.Get(icon.Pause)
	case player.Opening:
		return icon.Get(icon.Loading)
	case player.Ended:
		return icon.Get(icon.Success)
	default:
		return icon.Get(icon.Stop)
	}
}

func volume(v int) string {
	if v == 0 {
		return icon.Get(icon.Muted)
	}
	return fmt.Sprintf("%s %d%%", icon.Get(icon.Volume), v)
}
