package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/player"
)

var (
	// ErrFormatMismatch is returned when a track needs a different device format than the one already opened.
	ErrFormatMismatch = errors.New("device already opened with a different format")

	// ErrNotOpen is returned by Start before Open.
	ErrNotOpen = errors.New("sink is not open")
)

// oto allows a single context per process.
var (
	otoMu     sync.Mutex
	otoCtx    *oto.Context
	otoFormat player.Format
)

func deviceContext(format player.Format, latency time.Duration) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		if format != otoFormat {
			return nil, fmt.Errorf("%w: have %d Hz, want %d Hz", ErrFormatMismatch, otoFormat.SampleRate, format.SampleRate)
		}
		return otoCtx, nil
	}
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("unsupported bit depth %d", format.BitDepth)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   latency,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	log.Infof("audio device opened at %d Hz, %d channels", format.SampleRate, format.Channels)
	otoCtx, otoFormat = ctx, format
	return otoCtx, nil
}

// SinkOptions sizes the device buffer.
type SinkOptions struct {
	Buffer time.Duration
	Period time.Duration
}

// bytesFor returns the byte length of d in format, aligned to whole frames.
func bytesFor(format player.Format, d time.Duration) int {
	frames := int(d * time.Duration(format.SampleRate) / time.Second)
	return max(frames, 1) * format.FrameSize()
}

// Sink plays PCM through the system audio device.
type Sink struct {
	opts SinkOptions

	mu     sync.Mutex
	ring   *ring
	period int
	format player.Format
	player *oto.Player
	volume float64
}

// NewSink returns a closed Sink.
func NewSink(opts SinkOptions) *Sink {
	return &Sink{opts: opts, volume: 1}
}

func (s *Sink) Open(format player.Format) error {
	if _, err := deviceContext(format, s.opts.Period); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.format = format
	s.period = bytesFor(format, s.opts.Period)
	s.ring = newRing(max(bytesFor(format, s.opts.Buffer), 2*s.period))
	return nil
}

func (s *Sink) Start() (io.Writer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ring == nil {
		return nil, ErrNotOpen
	}

	ctx, err := deviceContext(s.format, s.opts.Period)
	if err != nil {
		return nil, err
	}

	s.player = ctx.NewPlayer(s.ring)
	s.player.SetVolume(s.volume)
	s.player.Play()
	return s.ring, nil
}

func (s *Sink) BytesFree() int {
	s.mu.Lock()
	r := s.ring
	s.mu.Unlock()

	if r == nil {
		return 0
	}
	return r.Free()
}

func (s *Sink) PeriodSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

func (s *Sink) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = volume
	if s.player != nil {
		s.player.SetVolume(volume)
	}
}

func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.player != nil {
		s.player.Pause()
		err = s.player.Close()
		s.player = nil
	}
	if s.ring != nil {
		s.ring.Reset()
		s.ring = nil
	}
	return err
}

// NullSink accepts audio at real-time speed and throws it away.
// It stands in for a device on headless machines and in tests.
type NullSink struct {
	opts SinkOptions
	now  func() time.Time

	mu       sync.Mutex
	open     bool
	format   player.Format
	capacity int
	period   int
	buffered int
	drained  time.Time
	volume   float64
	written  int
}

// NewNullSink returns a closed NullSink.
func NewNullSink(opts SinkOptions) *NullSink {
	return &NullSink{opts: opts, now: time.Now, volume: 1}
}

func (s *NullSink) Open(format player.Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.format = format
	s.period = bytesFor(format, s.opts.Period)
	s.capacity = max(bytesFor(format, s.opts.Buffer), 2*s.period)
	s.buffered = 0
	s.open = true
	return nil
}

func (s *NullSink) Start() (io.Writer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, ErrNotOpen
	}
	s.drained = s.now()
	return s, nil
}

// drain consumes the bytes a device would have played since the last call.
func (s *NullSink) drain() {
	now := s.now()
	rate := int64(s.format.SampleRate)
	frames := int64(now.Sub(s.drained)) * rate / int64(time.Second)
	if frames <= 0 {
		return
	}

	s.buffered -= int(frames) * s.format.FrameSize()
	if s.buffered <= 0 {
		s.buffered = 0
		s.drained = now
		return
	}
	s.drained = s.drained.Add(time.Duration(frames * int64(time.Second) / rate))
}

func (s *NullSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drain()
	n := min(len(p), s.capacity-s.buffered)
	s.buffered += n
	s.written += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (s *NullSink) BytesFree() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return 0
	}
	s.drain()
	return s.capacity - s.buffered
}

func (s *NullSink) PeriodSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

func (s *NullSink) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = volume
}

// Written returns the number of bytes accepted since the sink was created.
func (s *NullSink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written
}

func (s *NullSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.buffered = 0
	return nil
}
