// Package player coordinates playback of a single track: it pumps decoded
// packets into an audio sink on a fixed tick, derives progress from packet
// timestamps and keeps the lyric cursor in step with the audio.
package player

import (
	"image"
	"io"

	"github.com/lyra-cli/lyra/lyrics"
)

// Packet is a chunk of decoded PCM together with its presentation time in seconds.
type Packet struct {
	Time float64
	Data []byte
}

// Format describes the PCM layout a source produces.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// FrameSize returns the number of bytes in one frame of every channel.
func (f Format) FrameSize() int {
	return f.Channels * f.BitDepth / 8
}

// Resolution carries what a source learned after opening a track.
// Err is set when the track could not be opened.
type Resolution struct {
	Title     string
	Performer string
	Album     string
	Duration  float64
	Format    Format
	Artwork   image.Image
	Err       error
}

// Track references a playable file and the metadata cached for it.
type Track struct {
	Locator   string  `json:"locator"`
	Title     string  `json:"title"`
	Performer string  `json:"performer"`
	Album     string  `json:"album"`
	Duration  float64 `json:"duration"`
}

// Source decodes a track into packets.
type Source interface {
	// Open starts decoding the track at locator and returns a channel that
	// delivers exactly one Resolution. Opening a new track abandons the previous one.
	Open(locator string) <-chan Resolution

	// CurrentPacket returns the next packet without blocking.
	// Empty Data with a valid time means nothing is ready yet.
	CurrentPacket() Packet

	// SetProgress repositions decoding to ratio of the duration.
	SetProgress(ratio float64)

	// Stop halts decoding.
	Stop()
}

// Sink plays PCM bytes on an output device.
type Sink interface {
	// Open prepares the device for the given format.
	Open(format Format) error

	// Start begins playback and returns the writer that feeds the device.
	// Writes never block; a short write means the device buffer is full.
	Start() (io.Writer, error)

	// BytesFree reports how many bytes the device buffer can take right now.
	BytesFree() int

	// PeriodSize reports the preferred write size in bytes.
	PeriodSize() int

	// SetVolume sets the linear gain in [0, 1].
	SetVolume(volume float64)

	// Close stops playback and releases the device.
	Close() error
}

// LyricDecoder loads time-stamped lyric lines from a file.
type LyricDecoder interface {
	Decode(path string) error
	ReadPacket() (lyrics.Entry, bool)
	DumpMetadata(w io.Writer)
}

// ArtworkSink receives the cover of the current track.
type ArtworkSink interface {
	SetImage(img image.Image)

	// Reset restores the placeholder.
	Reset()
}
