package player

import (
	"bytes"
	"fmt"
	"io"

	"github.com/lyra-cli/lyra/log"
	"github.com/lyra-cli/lyra/lyrics"
)

// startEpsilon is the time below which an empty packet means the stream never started.
const startEpsilon = 1e-8

// TickResult summarises one pump iteration.
type TickResult struct {
	Packets         int
	Chunks          int
	Written         int
	ProgressChanged bool
	LyricChanged    bool
	Finished        bool
}

// Pump moves packets from a source into a sink in period-sized chunks.
//
// It advances the clock to each packet's time and, when Lyrics is set, the
// lyric cursor along with it. Audio waiting for the sink is staged in an
// unbounded buffer.
type Pump struct {
	Clock  *Clock
	Lyrics *lyrics.Timeline

	staged bytes.Buffer
}

// Staged returns the number of bytes waiting for the sink.
func (p *Pump) Staged() int {
	return p.staged.Len()
}

// Discard drops all staged audio.
func (p *Pump) Discard() {
	p.staged.Reset()
}

// Tick pulls packets until the staged audio covers the sink's free space and
// then writes whole periods. Bytes the sink refuses stay at the front of the
// staging buffer for the next tick. It reports Finished without writing
// anything once the source runs past the end of the track.
func (p *Pump) Tick(src Source, sink Sink, out io.Writer) (TickResult, error) {
	var res TickResult

	for p.staged.Len() < sink.BytesFree() {
		pkt := src.CurrentPacket()
		res.Packets++

		if pkt.Time >= p.Clock.Duration() || (len(pkt.Data) == 0 && pkt.Time < startEpsilon) {
			res.Finished = true
			return res, nil
		}

		p.Clock.Advance(pkt.Time)
		res.ProgressChanged = true
		if p.Lyrics != nil && p.Lyrics.Advance(int64(pkt.Time*1000)) {
			res.LyricChanged = true
		}

		if len(pkt.Data) == 0 {
			break
		}
		p.staged.Write(pkt.Data)
	}

	period := sink.PeriodSize()
	if period <= 0 {
		return res, fmt.Errorf("invalid period size %d", period)
	}

	for p.staged.Len() >= period {
		chunk := p.staged.Bytes()[:period]
		n, err := out.Write(chunk)
		p.staged.Next(n)
		res.Written += n
		if n == len(chunk) {
			res.Chunks++
		}
		if err != nil && err != io.ErrShortWrite {
			return res, fmt.Errorf("write to sink: %w", err)
		}
		if n < len(chunk) {
			log.Tracef("sink accepted %d of %d bytes, %d stay staged", n, len(chunk), p.staged.Len())
			break
		}
	}

	return res, nil
}
