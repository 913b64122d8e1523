package player

import (
	"testing"

	"github.com/grauman/grauman/event"
	"github.com/grauman/grauman/playback"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func names(es []emitted) []string {
	return lo.Map(es, func(e emitted, _ int) string { return e.name })
}

func change(name string, data any) message {
	return message{Event: "property-change", Name: name, Data: data}
}

func TestTranslator(t *testing.T) {
	Convey("Given a fresh translator", t, func() {
		tr := newTranslator()

		Convey("When a file starts and loads", func() {
			start := tr.translate(message{Event: "start-file"})
			loaded := tr.translate(message{Event: "file-loaded"})

			Convey("Then loading events are emitted", func() {
				So(names(start), ShouldResemble, []string{event.LoadStart})
				So(names(loaded), ShouldResemble, []string{event.LoadedMetadata, event.CanPlayThrough})
			})
		})

		Convey("When the initial pause state is reported", func() {
			Convey("Then nothing is emitted since mpv starts paused", func() {
				So(tr.translate(change("pause", true)), ShouldBeEmpty)
				So(tr.isPaused(), ShouldBeTrue)
			})
		})

		Convey("When playback is resumed and paused", func() {
			resumed := tr.translate(change("pause", false))
			paused := tr.translate(change("pause", true))

			Convey("Then play, playing and pause follow", func() {
				So(names(resumed), ShouldResemble, []string{event.Play, event.Playing})
				So(names(paused), ShouldResemble, []string{event.Pause})
			})
		})

		Convey("When the position and duration change", func() {
			So(names(tr.translate(change("time-pos", 12.5))), ShouldResemble, []string{event.TimeUpdate})
			So(names(tr.translate(change("duration", 90.0))), ShouldResemble, []string{event.LoadedMetadata})

			Convey("Then the getters report them", func() {
				So(tr.currentTime(), ShouldEqual, 12.5)
				So(tr.totalDuration(), ShouldEqual, 90)
			})

			Convey("Then an unchanged duration is not repeated", func() {
				So(tr.translate(change("duration", 90.0)), ShouldBeEmpty)
			})

			Convey("Then an unavailable position is ignored", func() {
				So(tr.translate(change("time-pos", nil)), ShouldBeEmpty)
				So(tr.currentTime(), ShouldEqual, 12.5)
			})
		})

		Convey("When a seek runs", func() {
			begin := tr.translate(change("seeking", true))
			end := tr.translate(change("seeking", false))

			Convey("Then seeking and seeked are emitted once each", func() {
				So(names(begin), ShouldResemble, []string{event.Seeking})
				So(names(end), ShouldResemble, []string{event.Seeked})
				So(tr.translate(change("seeking", false)), ShouldBeEmpty)
			})
		})

		Convey("When the end is reached", func() {
			Convey("Then ended is emitted once", func() {
				So(names(tr.translate(change("eof-reached", true))), ShouldResemble, []string{event.Ended})
				So(tr.translate(change("eof-reached", true)), ShouldBeEmpty)
			})
		})

		Convey("When the cache runs dry while playing", func() {
			tr.translate(change("pause", false))
			stalled := tr.translate(change("paused-for-cache", true))
			resumed := tr.translate(change("paused-for-cache", false))

			Convey("Then waiting is followed by playing", func() {
				So(names(stalled), ShouldResemble, []string{event.Waiting})
				So(names(resumed), ShouldResemble, []string{event.Playing})
			})
		})

		Convey("When the demuxer cache grows", func() {
			tr.translate(change("time-pos", 10.0))
			progress := tr.translate(change("demuxer-cache-time", 20.0))

			Convey("Then progress reports the range ahead of the position", func() {
				So(names(progress), ShouldResemble, []string{event.Progress})
				So(tr.buffered(), ShouldResemble, []playback.Range{{Start: 10, End: 30}})
			})
		})

		Convey("When the file fails", func() {
			failed := tr.translate(message{Event: "end-file", Reason: "error", FileError: "loading failed"})

			Convey("Then an error carries the reason", func() {
				So(failed, ShouldHaveLength, 1)
				So(failed[0].name, ShouldEqual, event.Error)
				So(failed[0].payload, ShouldEqual, "loading failed")
			})

			Convey("Then a normal end is silent", func() {
				So(tr.translate(message{Event: "end-file", Reason: "eof"}), ShouldBeEmpty)
			})
		})
	})
}

func TestArguments(t *testing.T) {
	Convey("Given an engine with settings applied before start", t, func() {
		m := lo.Must(New("https://cdn.example/clip.mp4", Options{
			Title:   "Clip\nOne",
			Headers: map[string]string{"Referer": "https://app.example", "Cookie": "a=1,b=2"},
			StartAt: 42.5,
		}))
		m.socketPath = "/tmp/grauman-test.sock"
		m.SetVolume(0.75)
		m.SetMuted(true)
		m.SetLoop(true)
		m.SetPlaybackRate(1.5)

		args := m.arguments()

		Convey("Then they become options", func() {
			So(args, ShouldContain, "--input-ipc-server=/tmp/grauman-test.sock")
			So(args, ShouldContain, "--pause=yes")
			So(args, ShouldContain, "--volume=75")
			So(args, ShouldContain, "--mute=yes")
			So(args, ShouldContain, "--loop-file=inf")
			So(args, ShouldContain, "--speed=1.5")
			So(args, ShouldContain, "--force-media-title=Clip One")
			So(args, ShouldContain, "--start=42.5")
			So(args, ShouldContain, "--http-header-fields=Cookie: a=1%2Cb=2,Referer: https://app.example")
		})

		Convey("Then the source comes last after the end of options", func() {
			So(args[len(args)-2:], ShouldResemble, []string{"--", "https://cdn.example/clip.mp4"})
		})

		Convey("Then commands fail until mpv runs", func() {
			So(m.Play(), ShouldEqual, ErrNotRunning)
			So(m.Seek(3), ShouldEqual, ErrNotRunning)
			So(m.Attached(), ShouldBeFalse)
			So(m.Release(), ShouldBeNil)
		})

		Convey("Then a new source is stored without loading", func() {
			So(m.SetSource("/media/other.mkv"), ShouldBeNil)
			So(m.arguments()[len(args)-1], ShouldEqual, "/media/other.mkv")
		})

		Convey("Then starting without a sink is refused", func() {
			So(m.Start(nil), ShouldEqual, ErrNoSink)
		})
	})
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Given media targets", t, func() {
		Convey("Then web URLs and paths are accepted", func() {
			So(lo.Must(sanitizeMediaTarget(" https://cdn.example/a.m3u8 ")), ShouldEqual, "https://cdn.example/a.m3u8")
			So(lo.Must(sanitizeMediaTarget("videos/../clip.mp4")), ShouldEqual, "clip.mp4")
		})

		Convey("Then flags, control characters and other schemes are rejected", func() {
			for _, target := range []string{"", "--script=evil.lua", "clip\n.mp4", "ytdl://abc", "rtmp://live"} {
				_, err := sanitizeMediaTarget(target)
				So(err, ShouldNotBeNil)
			}
		})

		Convey("Then titles lose control characters", func() {
			So(sanitizeTitle(" a\tb\x00c\r\n"), ShouldEqual, "a bc")
		})
	})
}
