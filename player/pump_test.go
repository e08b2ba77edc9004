package player

import (
	"bytes"
	"testing"

	"github.com/lyra-cli/lyra/lyrics"
	. "github.com/smartystreets/goconvey/convey"
)

func newPump(duration float64) *Pump {
	clock := &Clock{}
	_ = clock.SetDuration(duration)
	clock.Start()
	return &Pump{Clock: clock}
}

// ramp returns n bytes whose values follow their offset, so reordering or loss shows.
func ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestPump(t *testing.T) {
	Convey("Given a sink with 4096 free bytes and 1024 byte periods", t, func() {
		sink := newFakeSink(4096, 1024)
		pump := newPump(10)

		Convey("A 3000 byte packet followed by nothing writes two chunks", func() {
			src := &fakeSource{
				packets: []Packet{{Time: 1, Data: fill(1, 3000)}},
				idle:    Packet{Time: 1},
			}
			res, err := pump.Tick(src, sink, sink)
			So(err, ShouldBeNil)
			So(res.Finished, ShouldBeFalse)
			So(res.Chunks, ShouldEqual, 2)
			So(sink.written.Len(), ShouldEqual, 2048)
			So(pump.Staged(), ShouldEqual, 952)
			So(res.ProgressChanged, ShouldBeTrue)
			So(pump.Clock.Progress(), ShouldEqual, 0.1)
		})

		Convey("Pulling stops once the staged audio covers the free space", func() {
			src := &fakeSource{
				packets: []Packet{
					{Time: 1, Data: fill(1, 2500)},
					{Time: 2, Data: fill(1, 2500)},
					{Time: 3, Data: fill(1, 2500)},
				},
				idle: Packet{Time: 3},
			}
			res, _ := pump.Tick(src, sink, sink)
			So(res.Packets, ShouldEqual, 2)
			So(len(src.packets), ShouldEqual, 1)
			So(pump.Staged(), ShouldBeLessThan, 1024)
		})

		Convey("Staged audio stays below one period after every tick", func() {
			src := &fakeSource{idle: Packet{Time: 1}}
			for _, size := range []int{17, 1023, 1024, 1025, 4000, 333, 2048, 5} {
				src.packets = append(src.packets, Packet{Time: 1, Data: fill(1, size)})
				_, err := pump.Tick(src, sink, sink)
				So(err, ShouldBeNil)
				So(pump.Staged(), ShouldBeLessThan, 1024)
			}
			So(sink.written.Len()%1024, ShouldEqual, 0)
		})

		Convey("A packet at the duration ends the stream without writing", func() {
			src := &fakeSource{packets: []Packet{{Time: 10, Data: fill(1, 3000)}}}
			res, err := pump.Tick(src, sink, sink)
			So(err, ShouldBeNil)
			So(res.Finished, ShouldBeTrue)
			So(sink.writes, ShouldEqual, 0)
			So(pump.Staged(), ShouldEqual, 0)
		})

		Convey("An empty packet at time zero ends the stream", func() {
			src := &fakeSource{idle: Packet{}}
			res, _ := pump.Tick(src, sink, sink)
			So(res.Finished, ShouldBeTrue)
			So(res.ProgressChanged, ShouldBeFalse)
		})

		Convey("An empty packet later in the stream only pauses pulling", func() {
			src := &fakeSource{idle: Packet{Time: 4}}
			res, _ := pump.Tick(src, sink, sink)
			So(res.Finished, ShouldBeFalse)
			So(res.Packets, ShouldEqual, 1)
			So(pump.Clock.Progress(), ShouldEqual, 0.4)
		})

		Convey("A short write stops the drain and keeps the refused bytes", func() {
			data := ramp(3000)
			sink.accept = 512
			src := &fakeSource{
				packets: []Packet{{Time: 1, Data: data}},
				idle:    Packet{Time: 1},
			}
			res, err := pump.Tick(src, sink, sink)
			So(err, ShouldBeNil)
			So(sink.writes, ShouldEqual, 1)
			So(res.Written, ShouldEqual, 512)
			So(res.Chunks, ShouldEqual, 0)
			So(pump.Staged(), ShouldEqual, 3000-512)

			Convey("The next tick writes them first", func() {
				sink.accept = -1
				res, err := pump.Tick(src, sink, sink)
				So(err, ShouldBeNil)
				So(res.Chunks, ShouldEqual, 2)
				So(sink.written.Len()+pump.Staged(), ShouldEqual, len(data))
				So(bytes.Equal(sink.written.Bytes(), data[:sink.written.Len()]), ShouldBeTrue)
			})
		})

		Convey("A sink that fills up loses no audio", func() {
			const (
				packetSize = 4096
				packets    = 600
				period     = 3528
				perTick    = 5 * period
			)
			sink := newFakeSink(0, period)
			sink.capacity = 25 * period

			stream := ramp(packets * packetSize)
			src := &fakeSource{idle: Packet{Time: 50}}
			for i := 0; i < packets; i++ {
				src.packets = append(src.packets, Packet{
					Time: float64(i+1) * packetSize / 176400,
					Data: stream[i*packetSize : (i+1)*packetSize],
				})
			}

			pump := newPump(100)
			for tick := 0; tick < 100; tick++ {
				sink.play(perTick)
				_, err := pump.Tick(src, sink, sink)
				So(err, ShouldBeNil)
				So(sink.buffered, ShouldBeLessThanOrEqualTo, sink.capacity)
			}

			pulled := (packets - len(src.packets)) * packetSize
			So(sink.written.Len()+pump.Staged(), ShouldEqual, pulled)
			So(bytes.Equal(sink.written.Bytes(), stream[:sink.written.Len()]), ShouldBeTrue)
		})

		Convey("Discard empties the staging buffer", func() {
			src := &fakeSource{
				packets: []Packet{{Time: 1, Data: fill(1, 3000)}},
				idle:    Packet{Time: 1},
			}
			_, _ = pump.Tick(src, sink, sink)
			pump.Discard()
			So(pump.Staged(), ShouldEqual, 0)
		})

		Convey("Given active lyrics", func() {
			var tl lyrics.Timeline
			tl.SetEntries([]lyrics.Entry{{PTS: 0}, {PTS: 1000}, {PTS: 2000}})
			tl.Cue()
			pump.Lyrics = &tl

			Convey("The cursor follows packet times", func() {
				src := &fakeSource{
					packets: []Packet{{Time: 0.5, Data: fill(1, 100)}, {Time: 1.5, Data: fill(1, 100)}},
					idle:    Packet{Time: 1.5},
				}
				res, _ := pump.Tick(src, sink, sink)
				So(res.LyricChanged, ShouldBeTrue)
				So(tl.Current(), ShouldEqual, 1)
				So(tl.Next(), ShouldEqual, 2)
			})

			Convey("No change is reported before a line passes", func() {
				src := &fakeSource{idle: Packet{Time: 0.5}}
				res, _ := pump.Tick(src, sink, sink)
				So(res.LyricChanged, ShouldBeFalse)
			})
		})
	})
}
