package util

import (
	"testing"

	"github.com/lyra-cli/lyra/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "track", "tracks"), ShouldEqual, "1 track")
		So(Quantify(2, "track", "tracks"), ShouldEqual, "2 tracks")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/song.flac"), ShouldEqual, "song")
		So(FileStem("song"), ShouldEqual, "song")
	})
}

func TestFormatSeconds(t *testing.T) {
	Convey("FormatSeconds", t, func() {
		So(FormatSeconds(0), ShouldEqual, "0:00")
		So(FormatSeconds(65.9), ShouldEqual, "1:05")
		So(FormatSeconds(3725), ShouldEqual, "1:02:05")
		So(FormatSeconds(-3), ShouldEqual, "0:00")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		fs := filesystem.API()
		lo.Must0(fs.WriteFile("/tmp/lyra/logs/a.log", []byte("x"), 0644))

		So(Delete("/tmp/lyra/logs/a.log"), ShouldBeNil)
		So(lo.Must(fs.Exists("/tmp/lyra/logs/a.log")), ShouldBeFalse)

		So(Delete("/tmp/lyra"), ShouldBeNil)
		So(lo.Must(fs.Exists("/tmp/lyra")), ShouldBeFalse)

		So(Delete("/tmp/missing"), ShouldNotBeNil)
	})
}
