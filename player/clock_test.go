package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClock(t *testing.T) {
	Convey("Given a reset clock", t, func() {
		var c Clock
		c.Reset()

		Convey("A zero duration is unplayable", func() {
			So(c.SetDuration(0), ShouldEqual, ErrUnplayable)
			c.Start()
			So(c.Running(), ShouldBeFalse)
		})

		Convey("Seeking is ignored while stopped", func() {
			So(c.SetDuration(200), ShouldBeNil)
			So(c.Seek(0.5), ShouldBeFalse)
			So(c.Progress(), ShouldEqual, 0)
		})

		Convey("Given a running 200 second track", func() {
			So(c.SetDuration(200), ShouldBeNil)
			c.Start()
			So(c.Running(), ShouldBeTrue)

			Convey("Advance derives progress from time", func() {
				c.Advance(50)
				So(c.Progress(), ShouldEqual, 0.25)
				So(c.Elapsed(), ShouldEqual, 50)
			})

			Convey("Advance does not clamp", func() {
				c.Advance(210)
				So(c.Progress(), ShouldBeGreaterThan, 1)
			})

			Convey("Seek applies optimistically", func() {
				So(c.Seek(0.5), ShouldBeTrue)
				So(c.Progress(), ShouldEqual, 0.5)
			})

			Convey("Seek within epsilon is rejected", func() {
				c.Advance(100)
				So(c.Seek(0.5+1e-7), ShouldBeFalse)
				So(c.Progress(), ShouldEqual, 0.5)
			})

			Convey("Finish pins progress and stops", func() {
				c.Finish()
				So(c.Progress(), ShouldEqual, 1)
				So(c.Running(), ShouldBeFalse)
			})
		})
	})
}
