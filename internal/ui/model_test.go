package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Nothing is appended without a notification", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is shown and cleared by its own timer", func() {
			So(m.Update(Notify("saved")()), ShouldNotBeNil)
			So(m.Notification(), ShouldEqual, "saved")
			So(m.View("a\nb"), ShouldStartWith, "a\nb  ")

			m.Update(ClearNotificationMsg{generation: m.generation})
			So(m.Notification(), ShouldBeEmpty)
		})

		Convey("A stale clear keeps the newer notification", func() {
			m.Update(NotificationMsg("first"))
			stale := ClearNotificationMsg{generation: m.generation}
			m.Update(NotificationMsg("second"))

			m.Update(stale)
			So(m.Notification(), ShouldEqual, "second")
		})
	})
}
