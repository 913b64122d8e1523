package log

import (
	"bytes"
	"testing"

	"github.com/grauman/grauman/filesystem"
	"github.com/grauman/grauman/key"
	logrus "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestLog(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		var buf bytes.Buffer
		logrus.SetOutput(&buf)
		Warnf("dropped %d", 1)
		So(buf.Len(), ShouldEqual, 0)
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)

		var buf bytes.Buffer
		logrus.SetOutput(&buf)

		Convey("WarnOnce only writes the first occurrence", func() {
			WarnOnce("test-once", "no persistence")
			WarnOnce("test-once", "no persistence")
			So(bytes.Count(buf.Bytes(), []byte("no persistence")), ShouldEqual, 1)
		})

		Convey("Entries carry their fields", func() {
			With(Fields{"player": "abc"}).Infof("mounted %s", "video")
			So(buf.String(), ShouldContainSubstring, "player=abc")
			So(buf.String(), ShouldContainSubstring, "mounted video")
		})

		Reset(func() {
			viper.Set(key.LogsWrite, false)
			enabled = false
		})
	})
}
