package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/storage/local"
)

func TestImageService(t *testing.T) {
	Convey("ImageService", t, func() {
		ctx := context.Background()
		st, err := local.NewLocalStorage(t.TempDir(), "http://localhost:8080/storage")
		So(err, ShouldBeNil)
		svc := NewImageService(st, 16)

		Convey("上传并删除自己的缩略图", func() {
			res, err := svc.Upload(ctx, 7, "image/png", 4, strings.NewReader("data"))
			So(err, ShouldBeNil)
			So(res.Key, ShouldStartWith, "thumbnails/7/")
			So(res.Key, ShouldEndWith, ".png")
			So(res.URL, ShouldEqual, "http://localhost:8080/storage/"+res.Key)

			err = svc.Delete(ctx, 8, res.Key)
			So(errors.Is(err, apperr.ErrForbidden), ShouldBeTrue)

			So(svc.Delete(ctx, 7, "/"+res.Key), ShouldBeNil)

			err = svc.Delete(ctx, 7, res.Key)
			So(errors.Is(err, apperr.ErrNotFound), ShouldBeTrue)
		})

		Convey("类型和大小校验", func() {
			_, err := svc.Upload(ctx, 7, "text/plain", 4, strings.NewReader("data"))
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)

			_, err = svc.Upload(ctx, 7, "image/jpeg", 17, strings.NewReader(strings.Repeat("x", 17)))
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)

			_, err = svc.Upload(ctx, 7, "image/jpeg", 0, strings.NewReader(""))
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
		})

		Convey("不能跳出自己的目录", func() {
			err := svc.Delete(ctx, 7, "thumbnails/7/../8/x.png")
			So(errors.Is(err, apperr.ErrForbidden), ShouldBeTrue)

			err = svc.Delete(ctx, 7, "../../etc/passwd")
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
		})
	})
}
