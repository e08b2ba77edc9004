package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func solid(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode(t *testing.T) {
	Convey("Given an encoded PNG", t, func() {
		var buf bytes.Buffer
		lo.Must0(png.Encode(&buf, solid(color.White, 4, 2)))

		Convey("It decodes", func() {
			img, err := Decode(buf.Bytes())
			So(err, ShouldBeNil)
			So(img.Bounds().Dx(), ShouldEqual, 4)
			So(img.Bounds().Dy(), ShouldEqual, 2)
		})
	})

	Convey("Garbage fails to decode", t, func() {
		_, err := Decode([]byte("definitely not an image"))
		So(err, ShouldNotBeNil)
	})

	Convey("AVIF is detected by its brand", t, func() {
		So(isAVIF([]byte("\x00\x00\x00\x1cftypavif\x00\x00\x00\x00")), ShouldBeTrue)
		So(isAVIF([]byte("\x00\x00\x00\x1cftypheic\x00\x00\x00\x00")), ShouldBeFalse)
		So(isAVIF([]byte("short")), ShouldBeFalse)
	})
}

func TestProvider(t *testing.T) {
	Convey("Given a new provider", t, func() {
		p := NewProvider()

		Convey("It shows the placeholder", func() {
			So(p.IsPlaceholder(), ShouldBeTrue)
			So(p.Image(), ShouldNotBeNil)
		})

		Convey("SetImage replaces the cover and bumps the version", func() {
			img := solid(color.Black, 2, 2)
			p.SetImage(img)
			So(p.Image(), ShouldEqual, img)
			So(p.IsPlaceholder(), ShouldBeFalse)
			So(p.Version(), ShouldEqual, 1)

			Convey("Reset restores the placeholder", func() {
				p.Reset()
				So(p.IsPlaceholder(), ShouldBeTrue)
				So(p.Version(), ShouldEqual, 2)
			})
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Render", t, func() {
		Convey("Produces one line per row and one block per column", func() {
			out := Render(Placeholder(), 8, 4)
			lines := strings.Split(out, "\n")
			So(lines, ShouldHaveLength, 4)
			So(strings.Count(lines[0], "▀"), ShouldEqual, 8)
		})

		Convey("Renders nothing for empty input", func() {
			So(Render(nil, 8, 4), ShouldBeEmpty)
			So(Render(Placeholder(), 0, 4), ShouldBeEmpty)
		})
	})
}
