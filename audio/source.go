package audio

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/lyra-cli/lyra/filesystem"
	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/player"
	"github.com/samber/lo"
)

// ErrUnsupportedFormat is returned for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// SupportedExtensions lists the file extensions Source can decode.
var SupportedExtensions = []string{".mp3", ".flac", ".ogg", ".oga", ".wav"}

// IsSupported reports whether path has a decodable extension.
func IsSupported(path string) bool {
	return lo.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// minPendingTime is reported while no packet is ready yet. A zero time
// would read as a stream that never started.
const minPendingTime = 1e-3

// resampleQuality is the beep interpolation quality used when rates differ.
const resampleQuality = 4

// SourceOptions shapes decoded output.
type SourceOptions struct {
	SampleRate   int
	PacketFrames int

	// Backlog is the number of decoded packets buffered ahead of the pump.
	Backlog int
}

// Source decodes audio files with beep on a background goroutine.
// Opening a file abandons the previous one.
type Source struct {
	opts SourceOptions

	mu      sync.Mutex
	session *session
}

// NewSource returns an idle Source.
func NewSource(opts SourceOptions) *Source {
	if opts.PacketFrames <= 0 {
		opts.PacketFrames = 1024
	}
	if opts.Backlog <= 0 {
		opts.Backlog = 32
	}
	return &Source{opts: opts}
}

type packet struct {
	seq  uint64
	time float64
	data []byte
}

type seekRequest struct {
	seq   uint64
	ratio float64
}

// session is one opened file. seq counts seeks; packets decoded before the
// latest seek carry an older seq and are dropped.
type session struct {
	cancel  context.CancelFunc
	packets chan packet
	seeks   chan seekRequest

	seq atomic.Uint64
	// exhaustedAt holds seq+1 of the position that reached the end, 0 otherwise
	exhaustedAt atomic.Uint64

	duration float64
	last     float64
}

func (s *Source) current() *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Source) Open(locator string) <-chan player.Resolution {
	s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		cancel:  cancel,
		packets: make(chan packet, s.opts.Backlog),
		seeks:   make(chan seekRequest, 1),
	}

	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	out := make(chan player.Resolution, 1)
	go sess.run(ctx, locator, s.opts, out)
	return out
}

func (s *Source) CurrentPacket() player.Packet {
	sess := s.current()
	if sess == nil {
		return player.Packet{}
	}

	want := sess.seq.Load()
	for {
		select {
		case p := <-sess.packets:
			if p.seq != want {
				continue
			}
			sess.last = p.time
			return player.Packet{Time: p.time, Data: p.data}
		default:
			if sess.exhaustedAt.Load() == want+1 {
				return player.Packet{Time: sess.duration}
			}
			return player.Packet{Time: math.Max(sess.last, minPendingTime)}
		}
	}
}

func (s *Source) SetProgress(ratio float64) {
	sess := s.current()
	if sess == nil {
		return
	}

	req := seekRequest{seq: sess.seq.Add(1), ratio: ratio}
	sess.last = ratio * sess.duration

	// only the newest request matters
	select {
	case <-sess.seeks:
	default:
	}
	sess.seeks <- req
}

func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		s.session.cancel()
		s.session = nil
	}
}

func openStream(locator string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(locator))
	if !lo.Contains(SupportedExtensions, ext) {
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := filesystem.API().Open(locator)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch ext {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		stream, format, err = vorbis.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(locator), err)
	}

	return &fileStream{StreamSeekCloser: stream, close: f.Close}, format, nil
}

// fileStream closes the underlying file together with the decoder.
type fileStream struct {
	beep.StreamSeekCloser
	close func() error
}

func (f *fileStream) Close() error {
	err := f.StreamSeekCloser.Close()
	_ = f.close()
	return err
}

func (sess *session) run(ctx context.Context, locator string, opts SourceOptions, out chan<- player.Resolution) {
	stream, format, err := openStream(locator)
	if err != nil {
		out <- player.Resolution{Err: err}
		return
	}
	defer stream.Close()

	tags, err := ReadTags(locator)
	if err != nil {
		log.Debugf("tags %s: %v", locator, err)
	}

	sess.duration = format.SampleRate.D(stream.Len()).Seconds()
	if sess.duration <= 0 {
		sess.duration = tags.Duration
	}

	res := player.Resolution{
		Title:     tags.Title,
		Performer: tags.Performer,
		Album:     tags.Album,
		Duration:  sess.duration,
		Format:    Output(opts.SampleRate),
	}
	if img, err := ReadArtwork(locator); err == nil {
		res.Artwork = img
	}

	target := beep.SampleRate(opts.SampleRate)
	resample := func() beep.Streamer {
		if format.SampleRate == target {
			return stream
		}
		return beep.Resample(resampleQuality, format.SampleRate, target, stream)
	}

	var (
		streamer = resample()
		buf      = make([][2]float64, opts.PacketFrames)
		applied  uint64
		resolved bool
	)

	seek := func(req seekRequest) {
		pos := int(req.ratio * float64(stream.Len()))
		pos = lo.Clamp(pos, 0, max(stream.Len()-1, 0))
		if err := stream.Seek(pos); err != nil {
			log.Warnf("seek %s: %v", locator, err)
		}
		streamer = resample()
		applied = req.seq
	}

	resolve := func() {
		if !resolved {
			out <- res
			resolved = true
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-sess.seeks:
			seek(req)
		default:
		}

		at := format.SampleRate.D(stream.Position()).Seconds()
		n, ok := streamer.Stream(buf)
		if n > 0 {
			p := packet{seq: applied, time: at, data: encodePCM16(buf[:n])}
			if !resolved {
				// the first packet is queued before the track is reported open
				sess.packets <- p
				resolve()
			} else {
				select {
				case sess.packets <- p:
				case req := <-sess.seeks:
					seek(req)
				case <-ctx.Done():
					return
				}
			}
		}
		if ok {
			continue
		}

		if err := stream.Err(); err != nil {
			log.Warnf("decode %s: %v", locator, err)
		}
		resolve()
		sess.exhaustedAt.Store(applied + 1)

		select {
		case <-ctx.Done():
			return
		case req := <-sess.seeks:
			seek(req)
		}
	}
}
