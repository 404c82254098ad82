package ctxutil

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestUserUID(t *testing.T) {
	Convey("context 中的用户 uid", t, func() {
		Convey("注入后可以取回", func() {
			ctx := WithUserUID(context.Background(), 7)
			uid, ok := GetUserUID(ctx)
			So(ok, ShouldBeTrue)
			So(uid, ShouldEqual, 7)
		})

		Convey("未注入时为匿名", func() {
			uid, ok := GetUserUID(context.Background())
			So(ok, ShouldBeFalse)
			So(uid, ShouldEqual, 0)
		})

		Convey("非正数视为匿名", func() {
			_, ok := GetUserUID(WithUserUID(context.Background(), 0))
			So(ok, ShouldBeFalse)
		})
	})
}
