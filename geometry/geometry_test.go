package geometry

import (
	"errors"
	"testing"

	"github.com/grauman/grauman/asset"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeSize(t *testing.T) {
	hd := Size{Width: 1920, Height: 1080}

	Convey("Given a 1920x1080 asset", t, func() {
		Convey("When it fits and upscaling is off", func() {
			bounds := Size{Width: 2560, Height: 1440}
			size := ComputeSize(hd, bounds, false, Never)

			Convey("Then the natural size is used verbatim", func() {
				So(size, ShouldResemble, hd)
				So(ComputeSize(hd, bounds, false, Never), ShouldResemble, size)
			})
		})

		Convey("When it fits but upscaling is always allowed", func() {
			size := ComputeSize(hd, Size{Width: 2560, Height: 1600}, false, Always)

			Convey("Then width drives the result", func() {
				So(size, ShouldResemble, Size{Width: 2560, Height: 1440})
			})
		})

		Convey("When the width overflows", func() {
			size := ComputeSize(hd, Size{Width: 960, Height: 1000}, false, Never)

			Convey("Then it is scaled to the container width", func() {
				So(size, ShouldResemble, Size{Width: 960, Height: 540})
			})
		})

		Convey("When the height overflows after fitting the width", func() {
			size := ComputeSize(hd, Size{Width: 1280, Height: 360}, false, Never)

			Convey("Then height becomes authoritative", func() {
				So(size, ShouldResemble, Size{Width: 640, Height: 360})
			})
		})

		Convey("When only the height overflows", func() {
			size := ComputeSize(hd, Size{Width: 4000, Height: 540}, false, FullscreenOnly)

			Convey("Then width is re-derived from the height ratio", func() {
				So(size, ShouldResemble, Size{Width: 960, Height: 540})
			})
		})

		Convey("When fullscreen permits upscaling into a tall viewport", func() {
			size := ComputeSize(hd, Size{Width: 3840, Height: 1600}, true, FullscreenOnly)

			Convey("Then the width pass overflows and height wins", func() {
				So(size, ShouldResemble, Size{Width: 2844, Height: 1600})
			})
		})

		Convey("When fullscreen but upscaling is disabled", func() {
			size := ComputeSize(hd, Size{Width: 3840, Height: 2160}, true, Never)

			Convey("Then the natural size is kept", func() {
				So(size, ShouldResemble, hd)
			})
		})
	})

	Convey("Given a zero-sized asset", t, func() {
		So(ComputeSize(Size{}, Size{Width: 100, Height: 100}, true, Always), ShouldResemble, Size{})
	})
}

func TestNaturalSize(t *testing.T) {
	Convey("Given descriptors without useful dimensions", t, func() {
		mk := func(opts asset.Options) Size {
			return NaturalSize(lo.Must(asset.New(opts)))
		}

		So(mk(asset.Options{MimeType: "audio/wav", Waveform: "w.png", Channels: 2}), ShouldResemble, StereoWaveformSize)
		So(mk(asset.Options{MimeType: "audio/wav", Waveform: "w.png", Channels: 1}), ShouldResemble, MonoWaveformSize)
		So(mk(asset.Options{MimeType: "audio/wav"}), ShouldResemble, AudioBarSize)
		So(mk(asset.Options{MimeType: "video/mp4", Is360: true, Width: 4096, Height: 2048}), ShouldResemble, ImmersiveSize)
		So(mk(asset.Options{MimeType: "video/mp4", Width: 640, Height: 480}), ShouldResemble, Size{Width: 640, Height: 480})
	})
}

func TestBounds(t *testing.T) {
	Convey("Given a padded container", t, func() {
		box := Box{Width: 800, Height: 600, Padding: Insets{Top: 10, Right: 20, Bottom: 10, Left: 20}}

		So(ContentBox(box), ShouldResemble, Size{Width: 760, Height: 580})
		So(Bounds(box, Size{Width: 1920, Height: 1080}, true), ShouldResemble, Size{Width: 1920, Height: 1080})
		So(Bounds(box, Size{Width: 1920, Height: 1080}, false), ShouldResemble, Size{Width: 760, Height: 580})
		So(ContentBox(Box{Width: 10, Padding: Insets{Left: 20}}), ShouldResemble, Size{})
	})
}

func TestUpscaleMode(t *testing.T) {
	Convey("Given mode names", t, func() {
		mode, err := ParseUpscaleMode("always")
		So(err, ShouldBeNil)
		So(mode, ShouldEqual, Always)

		_, err = ParseUpscaleMode("sometimes")
		So(errors.Is(err, ErrInvalidUpscale), ShouldBeTrue)

		So(UpscaleMode("sometimes").Valid(), ShouldBeFalse)
		So(FullscreenOnly.Valid(), ShouldBeTrue)
		So(FullscreenOnly.Permits(false), ShouldBeFalse)
		So(FullscreenOnly.Permits(true), ShouldBeTrue)
		So(Never.Permits(true), ShouldBeFalse)
	})
}
