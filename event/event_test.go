package event

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	names []string
}

func (r *recorder) Notify(name string, _ any) {
	r.names = append(r.names, name)
}

func TestHub(t *testing.T) {
	Convey("Given a hub", t, func() {
		var hub Hub
		var calls []any

		handler := func(payload any) { calls = append(calls, payload) }

		Convey("When the same handler subscribes twice", func() {
			_, err := hub.On(Playing, handler)
			So(err, ShouldBeNil)
			_, err = hub.On(Playing, handler)
			So(err, ShouldBeNil)

			hub.Notify(Playing, 1)

			Convey("Then it is invoked twice", func() {
				So(calls, ShouldResemble, []any{1, 1})
			})

			Convey("And off without ids removes every handler", func() {
				hub.Off(Playing)
				hub.Notify(Playing, 2)
				So(calls, ShouldHaveLength, 2)
				So(hub.Count(Playing), ShouldEqual, 0)
			})
		})

		Convey("When a single registration is removed", func() {
			first, _ := hub.On(Pause, handler)
			_, _ = hub.On(Pause, func(any) { calls = append(calls, "other") })
			hub.Off(Pause, first)
			hub.Notify(Pause, "p")

			Convey("Then only the other one runs", func() {
				So(calls, ShouldResemble, []any{"other"})
			})
		})

		Convey("When a handler registers another during dispatch", func() {
			_, _ = hub.On(Ended, func(any) {
				calls = append(calls, "outer")
				_, _ = hub.On(Ended, handler)
			})
			hub.Notify(Ended, "inner")

			Convey("Then the new handler waits for the next notification", func() {
				So(calls, ShouldResemble, []any{"outer"})
				hub.Notify(Ended, "inner")
				So(calls, ShouldResemble, []any{"outer", "outer", "inner"})
			})
		})

		Convey("When arguments are invalid", func() {
			_, err := hub.On("", handler)
			So(err, ShouldEqual, ErrInvalidEvent)
			_, err = hub.On(Playing, nil)
			So(err, ShouldEqual, ErrInvalidHandler)
			So(hub.SetBubbleTarget(nil), ShouldEqual, ErrInvalidTarget)
			So(hub.SetBubbleTarget(&hub), ShouldEqual, ErrInvalidTarget)
			_, err = hub.Once(Playing, nil)
			So(err, ShouldEqual, ErrInvalidHandler)
		})

		Convey("When a nil hub is passed as the bubble target", func() {
			var parent *Hub
			So(hub.SetBubbleTarget(parent), ShouldEqual, ErrInvalidTarget)

			Convey("Then notifying still works", func() {
				_, _ = hub.On(Playing, handler)
				So(func() { hub.Notify(Playing, "p") }, ShouldNotPanic)
				So(calls, ShouldResemble, []any{"p"})
			})
		})

		Convey("When a handler subscribes once", func() {
			id, err := hub.Once(Seeking, handler)
			So(err, ShouldBeNil)
			So(id, ShouldNotEqual, 0)
			So(hub.Count(Seeking), ShouldEqual, 1)

			hub.Notify(Seeking, 1)
			hub.Notify(Seeking, 2)

			Convey("Then it runs for the first notification only", func() {
				So(calls, ShouldResemble, []any{1})
				So(hub.Count(Seeking), ShouldEqual, 0)
			})
		})

		Convey("When a once registration is removed before it fires", func() {
			id, _ := hub.Once(Seeking, handler)
			hub.Off(Seeking, id)
			hub.Notify(Seeking, 1)
			So(calls, ShouldBeEmpty)
		})

		Convey("When a bubble target is set", func() {
			first, second := &recorder{}, &recorder{}
			So(hub.SetBubbleTarget(first), ShouldBeNil)
			So(hub.SetBubbleTarget(second), ShouldBeNil)
			hub.Notify(Seeked, nil)

			Convey("Then only the last target receives the event", func() {
				So(first.names, ShouldBeEmpty)
				So(second.names, ShouldResemble, []string{Seeked})
			})
		})

		Convey("When hubs are chained", func() {
			var parent Hub
			_, _ = parent.On(Waiting, handler)
			So(hub.SetBubbleTarget(&parent), ShouldBeNil)
			hub.Notify(Waiting, "w")

			Convey("Then the parent's handlers run", func() {
				So(calls, ShouldResemble, []any{"w"})
			})
		})
	})
}

func TestNames(t *testing.T) {
	Convey("Given streaming engine keys", t, func() {
		So(HLSEventName("MANIFEST_LOADED"), ShouldEqual, "hlsManifestLoaded")
		So(HLSEventName("ERROR"), ShouldEqual, "hlsError")
		So(HLSLevelUpdated, ShouldEqual, "hlsLevelUpdated")
		So(IsNative(TimeUpdate), ShouldBeTrue)
		So(IsNative(HLSError), ShouldBeFalse)
		So(Native, ShouldHaveLength, 21)
	})
}
