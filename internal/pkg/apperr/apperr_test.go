package apperr

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("错误种类判断", t, func() {
		Convey("带说明的错误保留种类", func() {
			err := Validation("title is required")
			So(errors.Is(err, ErrValidation), ShouldBeTrue)
			So(errors.Is(err, ErrNotFound), ShouldBeFalse)
			So(DetailOf(err), ShouldEqual, "title is required")
		})

		Convey("再次包装后仍可识别", func() {
			err := fmt.Errorf("create novel: %w", NotFound("novel %d", 42))
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(DetailOf(err), ShouldEqual, "novel 42")
		})

		Convey("存储错误同时保留原始错误", func() {
			cause := errors.New("connection reset")
			err := Store(cause)
			So(errors.Is(err, ErrStoreFailure), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "connection reset")
		})

		Convey("nil 不包装", func() {
			So(Store(nil), ShouldBeNil)
		})
	})
}
