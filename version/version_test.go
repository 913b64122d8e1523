package version

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.2.0", "0.1.9", 1},
			{"v0.1.0", "0.1.0", 0},
			{"1.0.0", "1.0.1", -1},
			{"v1.2.0-rc1", "1.1.9", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		_, err := Compare("latest", "0.1.0")
		So(errors.Is(err, ErrInvalidVersion), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, `"latest"`)

		_, err = Compare("0.1.0", "")
		So(errors.Is(err, ErrInvalidVersion), ShouldBeTrue)
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a release registry", t, func() {
		var body string
		var status int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		Reset(srv.Close)

		Convey("When it reports a tagged release", func() {
			status, body = http.StatusOK, `{"tag_name":"v0.3.1"}`
			latest, err := fetchLatest(srv.URL)

			Convey("Then the version is returned without its prefix", func() {
				So(err, ShouldBeNil)
				So(latest, ShouldEqual, "0.3.1")
			})
		})

		Convey("When the tag is empty", func() {
			status, body = http.StatusOK, `{}`
			_, err := fetchLatest(srv.URL)

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the registry is rate limited", func() {
			status, body = http.StatusForbidden, ``
			_, err := fetchLatest(srv.URL)

			Convey("Then the status is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "403")
			})
		})
	})
}
