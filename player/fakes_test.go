package player

import (
	"bytes"
	"image"
	"io"
	"time"
)

type fakeSource struct {
	packets     []Packet
	idle        Packet
	resolution  chan Resolution
	resolutions []chan Resolution
	opened      []string
	seeks       []float64
	stopped     int
}

func (s *fakeSource) Open(locator string) <-chan Resolution {
	s.opened = append(s.opened, locator)
	s.resolution = make(chan Resolution, 1)
	s.resolutions = append(s.resolutions, s.resolution)
	return s.resolution
}

func (s *fakeSource) CurrentPacket() Packet {
	if len(s.packets) == 0 {
		return s.idle
	}
	p := s.packets[0]
	s.packets = s.packets[1:]
	return p
}

func (s *fakeSource) SetProgress(ratio float64) {
	s.seeks = append(s.seeks, ratio)
}

func (s *fakeSource) Stop() {
	s.stopped++
}

// fakeSink accepts everything unless accept is set, or models a device
// buffer of the given capacity when capacity is set.
type fakeSink struct {
	free     int
	period   int
	accept   int
	capacity int
	buffered int
	written  bytes.Buffer
	writes   int
	volume   float64
	format   Format
	opened   int
	closed   int
	openErr  error
}

func newFakeSink(free, period int) *fakeSink {
	return &fakeSink{free: free, period: period, accept: -1, volume: -1}
}

func (s *fakeSink) Open(format Format) error {
	if s.openErr != nil {
		return s.openErr
	}
	s.format = format
	s.opened++
	return nil
}

func (s *fakeSink) Start() (io.Writer, error) { return s, nil }

func (s *fakeSink) BytesFree() int {
	if s.capacity > 0 {
		return s.capacity - s.buffered
	}
	return s.free
}

func (s *fakeSink) PeriodSize() int     { return s.period }
func (s *fakeSink) SetVolume(v float64) { s.volume = v }

func (s *fakeSink) Close() error {
	s.closed++
	return nil
}

func (s *fakeSink) Write(p []byte) (int, error) {
	s.writes++
	accept := s.accept
	if s.capacity > 0 {
		accept = s.capacity - s.buffered
	}
	if accept >= 0 && len(p) > accept {
		s.written.Write(p[:accept])
		s.buffered += accept
		return accept, io.ErrShortWrite
	}
	s.written.Write(p)
	s.buffered += len(p)
	return len(p), nil
}

// play consumes n buffered bytes the way a device would.
func (s *fakeSink) play(n int) {
	s.buffered = max(s.buffered-n, 0)
}

type fakeTimer struct {
	active bool
	period time.Duration
	starts int
	stops  int
	ch     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{ch: make(chan time.Time)}
}

func (t *fakeTimer) Start(period time.Duration) {
	t.active = true
	t.period = period
	t.starts++
}

func (t *fakeTimer) Stop() {
	if t.active {
		t.stops++
	}
	t.active = false
}

func (t *fakeTimer) Active() bool { return t.active }

func (t *fakeTimer) C() <-chan time.Time {
	if !t.active {
		return nil
	}
	return t.ch
}

type fakeArtwork struct {
	resets int
	images int
}

func (a *fakeArtwork) SetImage(image.Image) { a.images++ }
func (a *fakeArtwork) Reset()               { a.resets++ }

func fill(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}
