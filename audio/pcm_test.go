package audio

import (
	"encoding/binary"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEncodePCM16(t *testing.T) {
	Convey("Given stereo float samples", t, func() {
		out := encodePCM16([][2]float64{{0, 1}, {-1, 2}})

		Convey("Each frame takes four bytes", func() {
			So(out, ShouldHaveLength, 8)
		})

		Convey("Samples are scaled and clipped", func() {
			So(int16(binary.LittleEndian.Uint16(out[0:])), ShouldEqual, 0)
			So(int16(binary.LittleEndian.Uint16(out[2:])), ShouldEqual, 32767)
			So(int16(binary.LittleEndian.Uint16(out[4:])), ShouldEqual, -32767)
			So(int16(binary.LittleEndian.Uint16(out[6:])), ShouldEqual, 32767)
		})
	})

	Convey("Output is 16-bit stereo", t, func() {
		f := Output(48000)
		So(f.SampleRate, ShouldEqual, 48000)
		So(f.FrameSize(), ShouldEqual, 4)
	})
}
