package id

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestID(t *testing.T) {
	Convey("随机标识", t, func() {
		a, b := New(), New()
		So(a, ShouldNotEqual, b)
		So(IsValid(a), ShouldBeTrue)
		So(IsValid("not-a-uuid"), ShouldBeFalse)

		c := Compact()
		So(len(c), ShouldEqual, 32)
		So(c, ShouldNotContainSubstring, "-")
		So(IsValid(c), ShouldBeTrue)
	})
}
