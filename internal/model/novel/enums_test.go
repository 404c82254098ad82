package novel

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEnums(t *testing.T) {
	Convey("枚举解析", t, func() {
		Convey("ViewType 不区分大小写，默认 latest", func() {
			v, ok := ParseViewType("POPULAR")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, ViewTypePopular)

			v, ok = ParseViewType("")
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, ViewTypeLatest)

			_, ok = ParseViewType("random")
			So(ok, ShouldBeFalse)
		})

		Convey("FeedType 兼容 user_ 前缀", func() {
			f, ok := ParseFeedType("USER_LIKED")
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, FeedTypeLiked)

			f, ok = ParseFeedType("authored")
			So(ok, ShouldBeTrue)
			So(f, ShouldEqual, FeedTypeAuthored)

			_, ok = ParseFeedType("followed")
			So(ok, ShouldBeFalse)
		})

		Convey("排序映射", func() {
			So(OrderOf(ViewTypePopular), ShouldEqual, OrderPopular)
			So(OrderOf(ViewTypeLatest), ShouldEqual, OrderLatest)
		})
	})
}
