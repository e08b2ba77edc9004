package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/lyra-cli/lyra/constant"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/lyrics"
	"github.com/samber/lo"
)

// ErrClosed is returned by commands issued after Run has returned.
var ErrClosed = errors.New("coordinator is closed")

// commandQueueSize bounds the number of commands waiting for the loop.
const commandQueueSize = 64

// Options configures a Coordinator. Source and Sink are required.
type Options struct {
	Source  Source
	Sink    Sink
	Lyrics  LyricDecoder
	Artwork ArtworkSink
	Timer   Timer
	Emitter Emitter

	// Volume is the initial volume in [0, 100].
	Volume int

	// LyricExtension is the sidecar extension, ".lrc" when empty.
	LyricExtension string

	// DumpLyricMetadata writes sidecar tags to the debug log on load.
	DumpLyricMetadata bool
}

// Snapshot is a copy of the observable playback state.
type Snapshot struct {
	State      State
	Track      Track
	Running    bool
	Progress   float64
	Duration   float64
	Volume     int
	Title      string
	Performer  string
	Album      string
	HasLyrics  bool
	LyricIndex int
	NextLyric  int
	Lyrics     []lyrics.Entry
}

// Elapsed returns the playback position in seconds.
func (s Snapshot) Elapsed() float64 {
	return s.Progress * s.Duration
}

// Coordinator owns the playback of one track at a time.
//
// All playback state lives on the goroutine running Run. Commands are queued
// to it and executed in order; Snapshot may be read from anywhere.
type Coordinator struct {
	source   Source
	sink     Sink
	decoder  LyricDecoder
	artwork  ArtworkSink
	timer    Timer
	lyricExt string
	dumpMeta bool

	clock     Clock
	pump      Pump
	timeline  lyrics.Timeline
	hasLyrics bool

	track     Track
	hasTrack  bool
	title     string
	performer string
	album     string
	volume    int
	state     State

	out      io.Writer
	sinkOpen bool
	pending  <-chan Resolution

	commands chan func()
	done     chan struct{}

	mu       sync.RWMutex
	emitter  Emitter
	snapshot Snapshot
}

// New returns a Coordinator in the Idle state. Call Run to start it.
func New(opts Options) *Coordinator {
	c := &Coordinator{
		source:   opts.Source,
		sink:     opts.Sink,
		decoder:  opts.Lyrics,
		artwork:  opts.Artwork,
		timer:    opts.Timer,
		lyricExt: opts.LyricExtension,
		dumpMeta: opts.DumpLyricMetadata,
		emitter:  opts.Emitter,
		volume:   lo.Clamp(opts.Volume, 0, 100),
		commands: make(chan func(), commandQueueSize),
		done:     make(chan struct{}),
	}
	if c.timer == nil {
		c.timer = NewTicker()
	}
	if c.lyricExt == "" {
		c.lyricExt = constant.LyricExtension
	}
	c.pump.Clock = &c.clock
	c.publish()
	return c
}

// SetEmitter replaces the event receiver.
func (c *Coordinator) SetEmitter(emitter Emitter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emitter = emitter
}

// Snapshot returns the state as of the last completed command or tick.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Run processes commands, source resolutions and ticks until ctx is done.
// On return the source is stopped and the sink closed.
func (c *Coordinator) Run(ctx context.Context) error {
	defer close(c.done)
	defer c.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-c.commands:
			fn()
		case res, ok := <-c.pending:
			c.pending = nil
			if ok {
				c.resolve(res)
			}
		case <-c.timer.C():
			c.tick()
		}
		c.publish()
	}
}

// Done is closed once Run has returned.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

func (c *Coordinator) post(fn func()) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.commands <- fn:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// Play starts track from the beginning, abandoning whatever was playing.
func (c *Coordinator) Play(track Track) error {
	return c.post(func() { c.play(track) })
}

// Suspend pauses the pump. Suspending twice is the same as suspending once.
func (c *Coordinator) Suspend() error {
	return c.post(c.suspend)
}

// Resume continues a suspended track or replays the current one if it ended.
func (c *Coordinator) Resume() error {
	return c.post(c.resume)
}

// Toggle suspends while playing and resumes otherwise.
func (c *Coordinator) Toggle() error {
	return c.post(func() {
		if c.state == Playing {
			c.suspend()
			return
		}
		c.resume()
	})
}

// SetProgress seeks to ratio of the track, clamped to [0, 1].
func (c *Coordinator) SetProgress(ratio float64) error {
	return c.post(func() { c.setProgress(ratio) })
}

// SeekBy moves the position by delta seconds.
func (c *Coordinator) SeekBy(delta float64) error {
	return c.post(func() {
		if d := c.clock.Duration(); d > 0 {
			c.setProgress((c.clock.Elapsed() + delta) / d)
		}
	})
}

// SetVolume sets the volume, clamped to [0, 100].
func (c *Coordinator) SetVolume(volume int) error {
	return c.post(func() { c.setVolume(volume) })
}

// AdjustVolume changes the volume by delta.
func (c *Coordinator) AdjustVolume(delta int) error {
	return c.post(func() { c.setVolume(c.volume + delta) })
}

// Stop ends playback and releases the sink. The track is kept for Resume.
func (c *Coordinator) Stop() error {
	return c.post(c.stop)
}

func (c *Coordinator) play(track Track) {
	log.Infof("playing %s", track.Locator)

	c.timer.Stop()
	c.closeSink()

	c.track = track
	c.hasTrack = true
	c.emit(TrackChanged)

	wasRunning := c.clock.Running()
	c.clock.Reset()
	c.pump.Discard()
	c.emit(ProgressChanged)
	if wasRunning {
		c.emit(RunningChanged)
	}

	c.hasLyrics = false
	c.pump.Lyrics = nil
	if c.artwork != nil {
		c.artwork.Reset()
		c.emit(ArtworkChanged)
	}

	c.pending = c.source.Open(track.Locator)
	c.setState(Opening)

	c.timeline.SetEntries(nil)
	c.loadLyrics(track.Locator)
	c.emit(LyricsChanged)
}

// loadLyrics looks for a sidecar lyric file next to locator.
func (c *Coordinator) loadLyrics(locator string) {
	if c.decoder == nil {
		return
	}

	path := strings.TrimSuffix(locator, filepath.Ext(locator)) + c.lyricExt
	if exists, _ := filesystem.API().Exists(path); !exists {
		return
	}

	if err := c.decoder.Decode(path); err != nil {
		log.Debugf("lyrics %s: %v", path, err)
		return
	}

	var entries []lyrics.Entry
	for {
		e, ok := c.decoder.ReadPacket()
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return
	}

	c.timeline.SetEntries(entries)
	c.timeline.Cue()
	c.hasLyrics = true
	c.pump.Lyrics = &c.timeline

	if c.dumpMeta {
		w := log.Writer()
		c.decoder.DumpMetadata(w)
		_ = w.Close()
	}
}

func (c *Coordinator) resolve(res Resolution) {
	if res.Err != nil {
		log.Errorf("open %s: %v", c.track.Locator, res.Err)
		c.setState(Idle)
		c.emitError(fmt.Errorf("open %s: %w", c.track.Locator, res.Err))
		return
	}

	if err := c.clock.SetDuration(res.Duration); err != nil {
		c.source.Stop()
		c.setState(Idle)
		c.emitError(fmt.Errorf("open %s: %w", c.track.Locator, err))
		return
	}

	c.clock.Start()
	c.emit(RunningChanged)

	c.title, c.performer, c.album = res.Title, res.Performer, res.Album
	c.emit(TitleChanged)
	c.emit(PerformerChanged)
	c.emit(AlbumChanged)
	c.emit(DurationChanged)

	if res.Artwork != nil && c.artwork != nil {
		c.artwork.SetImage(res.Artwork)
		c.emit(ArtworkChanged)
	}

	if err := c.openSink(res.Format); err != nil {
		log.Errorf("sink: %v", err)
		c.clock.Halt()
		c.source.Stop()
		c.setState(Idle)
		c.emit(RunningChanged)
		c.emitError(err)
		return
	}

	c.timer.Start(TickPeriod)
	c.setState(Playing)
}

func (c *Coordinator) openSink(format Format) error {
	c.closeSink()

	if err := c.sink.Open(format); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	out, err := c.sink.Start()
	if err != nil {
		_ = c.sink.Close()
		return fmt.Errorf("start sink: %w", err)
	}

	c.out = out
	c.sinkOpen = true
	c.sink.SetVolume(float64(c.volume) / 100)
	return nil
}

func (c *Coordinator) closeSink() {
	if !c.sinkOpen {
		return
	}
	if err := c.sink.Close(); err != nil {
		log.Warnf("close sink: %v", err)
	}
	c.out = nil
	c.sinkOpen = false
}

func (c *Coordinator) tick() {
	if !c.clock.Running() || c.out == nil {
		c.timer.Stop()
		return
	}

	res, err := c.pump.Tick(c.source, c.sink, c.out)
	if err != nil {
		log.Warnf("pump: %v", err)
	}

	if res.Finished {
		c.finish()
		return
	}
	if res.LyricChanged {
		c.emit(LyricIndexChanged)
	}
	if res.ProgressChanged {
		c.emit(ProgressChanged)
	}
}

func (c *Coordinator) finish() {
	log.Infof("finished %s", c.track.Locator)

	c.clock.Finish()
	c.source.Stop()
	c.timer.Stop()
	c.pump.Discard()
	c.setState(Ended)

	c.emit(Finished)
	c.emit(ProgressChanged)
	c.emit(RunningChanged)
}

func (c *Coordinator) suspend() {
	if c.timer.Active() {
		c.timer.Stop()
	}
	if c.state == Playing {
		c.setState(Suspended)
	}
}

func (c *Coordinator) resume() {
	switch {
	case c.state == Opening:
		return
	case c.clock.Running():
		if !c.timer.Active() {
			c.timer.Start(TickPeriod)
		}
		c.setState(Playing)
	case c.hasTrack:
		c.play(c.track)
	}
}

func (c *Coordinator) setProgress(ratio float64) {
	ratio = lo.Clamp(ratio, 0, 1)
	if !c.clock.Seek(ratio) {
		return
	}

	c.pump.Discard()
	c.emit(ProgressChanged)
	c.source.SetProgress(ratio)

	if c.hasLyrics && c.timeline.SyncToTime(int64(ratio*c.clock.Duration()*1000)) {
		c.emit(LyricIndexChanged)
	}
}

func (c *Coordinator) setVolume(volume int) {
	volume = lo.Clamp(volume, 0, 100)
	if volume == c.volume {
		return
	}

	c.volume = volume
	if c.sinkOpen {
		c.sink.SetVolume(float64(volume) / 100)
	}
	c.emit(VolumeChanged)
}

func (c *Coordinator) stop() {
	wasRunning := c.clock.Running()

	c.timer.Stop()
	c.source.Stop()
	c.closeSink()
	c.pending = nil
	c.clock.Reset()
	c.pump.Discard()
	c.setState(Idle)

	c.emit(ProgressChanged)
	if wasRunning {
		c.emit(RunningChanged)
	}
}

func (c *Coordinator) shutdown() {
	c.timer.Stop()
	c.source.Stop()
	c.closeSink()
	c.publish()
}

func (c *Coordinator) setState(s State) {
	if c.state == s {
		return
	}
	c.state = s
	c.emit(StateChanged)
}

func (c *Coordinator) emit(kind EventKind) {
	c.publish()

	c.mu.RLock()
	emitter := c.emitter
	c.mu.RUnlock()

	if emitter != nil {
		emitter(Event{Kind: kind})
	}
}

func (c *Coordinator) emitError(err error) {
	c.publish()

	c.mu.RLock()
	emitter := c.emitter
	c.mu.RUnlock()

	if emitter != nil {
		emitter(Event{Kind: Error, Err: err})
	}
}

// publish copies the loop-owned state into the shared snapshot.
func (c *Coordinator) publish() {
	s := Snapshot{
		State:      c.state,
		Track:      c.track,
		Running:    c.clock.Running(),
		Progress:   c.clock.Progress(),
		Duration:   c.clock.Duration(),
		Volume:     c.volume,
		Title:      c.title,
		Performer:  c.performer,
		Album:      c.album,
		HasLyrics:  c.hasLyrics,
		LyricIndex: c.timeline.Current(),
		NextLyric:  c.timeline.Next(),
	}
	if c.hasLyrics {
		s.Lyrics = c.timeline.Entries()
	}

	c.mu.Lock()
	c.snapshot = s
	c.mu.Unlock()
}
