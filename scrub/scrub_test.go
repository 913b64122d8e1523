package scrub

import (
	"testing"
	"time"

	"github.com/grauman/grauman/clock"
	"github.com/grauman/grauman/playback"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeCapture struct {
	move    func(Point)
	release func(Point)
	stops   int
}

func (f *fakeCapture) Capture(move func(Point), release func(Point)) func() {
	f.move, f.release = move, release
	return func() {
		f.stops++
		f.move, f.release = nil, nil
	}
}

type fakeFocus struct {
	count int
}

func (f *fakeFocus) Focus() {
	f.count++
}

var bar = Track{Left: 100, Top: 500, Width: 200, Height: 10}

func TestFraction(t *testing.T) {
	Convey("Given a horizontal track", t, func() {
		So(Fraction(100, bar), ShouldEqual, 0)
		So(Fraction(200, bar), ShouldEqual, 0.5)
		So(Fraction(50, bar), ShouldEqual, 0)
		So(Fraction(900, bar), ShouldEqual, 1)
		So(Fraction(150, Track{}), ShouldEqual, 0)
	})

	Convey("Given a vertical track", t, func() {
		track := Track{Top: 100, Height: 50}
		So(VerticalFraction(100, track), ShouldEqual, 1)
		So(VerticalFraction(150, track), ShouldEqual, 0)
		So(VerticalFraction(125, track), ShouldEqual, 0.5)
		So(VerticalFraction(10, track), ShouldEqual, 1)
		So(VerticalFraction(400, track), ShouldEqual, 0)
	})
}

func TestScrubber(t *testing.T) {
	Convey("Given a scrubber over a 100s asset", t, func() {
		c := clock.NewFake()
		capture := &fakeCapture{}
		focus := &fakeFocus{}
		var seeks []float64

		s := NewScrubber(c, capture, focus, func(seconds float64) { seeks = append(seeks, seconds) })
		s.SetTrack(bar)
		s.Update(10, 100, []playback.Range{{Start: 0, End: 40}}, false)

		Convey("When the user drags and releases", func() {
			So(s.Press(Point{X: 150}), ShouldBeTrue)
			So(s.Dragging(), ShouldBeTrue)
			So(s.PlayedFraction(), ShouldEqual, 0.25)

			capture.move(Point{X: 200})
			capture.move(Point{X: 240})

			Convey("Then moves are throttled with a trailing update", func() {
				So(s.HoverTime(), ShouldEqual, 50)
				c.Advance(25 * time.Millisecond)
				So(s.HoverTime(), ShouldEqual, 70)
			})

			Convey("Then release commits the seek and returns focus", func() {
				capture.release(Point{X: 260})
				So(seeks, ShouldResemble, []float64{80})
				So(focus.count, ShouldEqual, 1)
				So(capture.stops, ShouldEqual, 1)
				So(s.Dragging(), ShouldBeFalse)
			})
		})

		Convey("When the pointer leaves the track while dragging", func() {
			s.Press(Point{X: 150})
			capture.release(Point{X: 5000})

			Convey("Then the seek clamps to the end", func() {
				So(seeks, ShouldResemble, []float64{100})
			})
		})

		Convey("When the bar is clicked", func() {
			s.Click(Point{X: 150})

			Convey("Then it seeks without dragging", func() {
				So(seeks, ShouldResemble, []float64{25})
				So(s.Dragging(), ShouldBeFalse)
			})
		})

		Convey("When seeking is locked", func() {
			s.Update(10, 100, []playback.Range{{Start: 60, End: 80}}, true)

			Convey("Then presses outside revealed regions are ignored", func() {
				So(s.Press(Point{X: 200}), ShouldBeFalse)
				s.Click(Point{X: 200})
				So(seeks, ShouldBeEmpty)
			})

			Convey("Then presses on the played part are accepted", func() {
				So(s.Press(Point{X: 110}), ShouldBeTrue)
			})

			Convey("Then clicks on a loaded range are accepted", func() {
				s.Click(Point{X: 250})
				So(seeks, ShouldResemble, []float64{75})
			})
		})

		Convey("When dragged by touch", func() {
			So(s.TouchStart([]Touch{{ID: 0, Point: Point{X: 120}}}), ShouldBeTrue)
			s.TouchMove([]Touch{{ID: 1, Point: Point{X: 290}}})
			So(s.HoverTime(), ShouldEqual, 10)
			s.TouchMove([]Touch{{ID: 1, Point: Point{X: 290}}, {ID: 0, Point: Point{X: 180}}})
			So(s.HoverTime(), ShouldEqual, 40)

			Convey("Then a secondary touch lifting keeps the drag", func() {
				s.TouchEnd([]Touch{{ID: 2}})
				So(s.Dragging(), ShouldBeTrue)
				So(seeks, ShouldBeEmpty)
			})

			Convey("Then lifting every finger commits", func() {
				s.TouchEnd(nil)
				So(seeks, ShouldResemble, []float64{40})
				So(focus.count, ShouldEqual, 1)
			})
		})

		Convey("When destroyed mid-drag", func() {
			s.Press(Point{X: 150})
			capture.move(Point{X: 200})
			capture.move(Point{X: 210})
			move := capture.move
			s.Destroy()

			Convey("Then the capture is released and nothing fires later", func() {
				So(capture.stops, ShouldEqual, 1)
				move(Point{X: 290})
				c.Advance(time.Second)
				So(seeks, ShouldBeEmpty)
				So(s.Press(Point{X: 150}), ShouldBeFalse)
			})
		})

		Convey("Then loaded fraction follows the last range", func() {
			So(s.LoadedFraction(), ShouldEqual, 0.4)
		})
	})
}

func TestVolumeSlider(t *testing.T) {
	Convey("Given a volume slider", t, func() {
		c := clock.NewFake()
		capture := &fakeCapture{}
		focus := &fakeFocus{}
		var volumes []float64

		v := NewVolumeSlider(c, capture, focus, func(volume float64) { volumes = append(volumes, volume) })
		v.SetTrack(Track{Top: 100, Height: 100})

		Convey("Then it is visible only when controllable and hovered or dragged", func() {
			So(v.Visible(true), ShouldBeFalse)
			v.SetHover(true)
			So(v.Visible(true), ShouldBeTrue)
			So(v.Visible(false), ShouldBeFalse)
		})

		Convey("When dragged with the mouse", func() {
			v.Press()
			capture.move(Point{Y: 150})
			capture.move(Point{Y: 175})

			Convey("Then moves commit at most every 25ms", func() {
				So(volumes, ShouldResemble, []float64{0.5})
				c.Advance(25 * time.Millisecond)
				So(volumes, ShouldResemble, []float64{0.5, 0.25})
			})

			Convey("Then release commits once more and returns focus", func() {
				capture.release(Point{Y: 50})
				So(volumes, ShouldResemble, []float64{0.5, 1})
				So(focus.count, ShouldEqual, 1)
				So(v.Dragging(), ShouldBeFalse)
				c.Advance(time.Second)
				So(volumes, ShouldHaveLength, 2)
			})
		})

		Convey("When dragged by touch", func() {
			v.TouchStart()
			v.TouchMove([]Touch{{ID: 0, Point: Point{Y: 200}}})
			v.TouchMove([]Touch{{ID: 3, Point: Point{Y: 100}}})
			v.TouchEnd(nil)

			Convey("Then only the primary touch sets the volume", func() {
				So(volumes, ShouldResemble, []float64{0})
				So(focus.count, ShouldEqual, 1)
			})
		})
	})
}
