// Package icon renders the player's status symbols in the variant the user picked.
//
// Icons can be displayed as emoji, nerd-font glyphs or plain ASCII.
package icon

import (
	"github.com/lyra-cli/lyra/key"
	"github.com/spf13/viper"
)

const (
	emoji = "emoji"
	nerd  = "nerd"
	plain = "plain"
)

// AvailableVariants returns every icon style identifier.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain}
}

// Icon names a symbol.
type Icon int

const (
	Play Icon = iota
	Pause
	Stop
	Next
	Previous
	Volume
	Muted
	Lyrics
	Music
	Loading
	Success
	Fail
)

type iconDef struct {
	emoji string
	nerd  string
	plain string
}

func (d iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	default:
		return ""
	}
}

var icons = map[Icon]iconDef{
	Play:     {emoji: "▶️", nerd: "", plain: ">"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||"},
	Stop:     {emoji: "⏹️", nerd: "", plain: "[]"},
	Next:     {emoji: "⏭️", nerd: "", plain: ">>"},
	Previous: {emoji: "⏮️", nerd: "", plain: "<<"},
	Volume:   {emoji: "🔊", nerd: "", plain: "vol"},
	Muted:    {emoji: "🔇", nerd: "", plain: "mute"},
	Lyrics:   {emoji: "🎤", nerd: "", plain: "~"},
	Music:    {emoji: "🎵", nerd: "", plain: "#"},
	Loading:  {emoji: "⏳", nerd: "", plain: "..."},
	Success:  {emoji: "🎉", nerd: "", plain: "+"},
	Fail:     {emoji: "💀", nerd: "", plain: "x"},
}

// Get returns the rendered string for i.
func Get(i Icon) string {
	return icons[i].Get()
}
