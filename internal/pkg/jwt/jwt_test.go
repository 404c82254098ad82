package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestJWT_GenerateAndValidate(t *testing.T) {
	Convey("JWT 签发与校验", t, func() {
		clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
		j := NewJWT("test-secret", WithClock(clock.Now))

		Convey("签发后立即校验返回原 uid", func() {
			for _, uid := range []int64{1, 7, 42, 1 << 40} {
				token, err := j.GenerateToken(uid)
				So(err, ShouldBeNil)

				claims, err := j.ValidateToken(token)
				So(err, ShouldBeNil)
				So(claims.UID, ShouldEqual, uid)
				So(claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time), ShouldEqual, TokenTTL)
			}
		})

		Convey("有效期内任意时刻都可校验通过", func() {
			token, err := j.GenerateToken(3)
			So(err, ShouldBeNil)

			clock.t = clock.t.Add(TokenTTL - time.Second)
			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UID, ShouldEqual, 3)
		})

		Convey("签发时间不在整秒上时仍有完整的 12 小时", func() {
			clock.t = time.Date(2026, 1, 2, 10, 0, 0, 900_000_000, time.UTC)
			issued := clock.t
			token, err := j.GenerateToken(3)
			So(err, ShouldBeNil)

			clock.t = issued.Add(TokenTTL - 500*time.Millisecond)
			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UID, ShouldEqual, 3)

			clock.t = issued.Add(TokenTTL + time.Second)
			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("超过 12 小时返回过期错误", func() {
			token, err := j.GenerateToken(3)
			So(err, ShouldBeNil)

			clock.t = clock.t.Add(TokenTTL + time.Second)
			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})

		Convey("密钥不一致返回无效", func() {
			token, err := NewJWT("other-secret", WithClock(clock.Now)).GenerateToken(3)
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("篡改签名返回无效", func() {
			token, err := j.GenerateToken(3)
			So(err, ShouldBeNil)

			tampered := token[:len(token)-2] + "xx"
			_, err = j.ValidateToken(tampered)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("格式错误返回无效", func() {
			for _, raw := range []string{"", "abc", "a.b.c", "Bearer x.y.z"} {
				_, err := j.ValidateToken(raw)
				So(err, ShouldEqual, ErrInvalidToken)
			}
		})

		Convey("缺少 uid 的 Token 返回无效", func() {
			claims := gojwt.MapClaims{
				"iat": clock.t.Unix(),
				"exp": clock.t.Add(time.Hour).Unix(),
			}
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("uid 类型错误返回无效", func() {
			claims := gojwt.MapClaims{
				"uid": "seven",
				"iat": clock.t.Unix(),
				"exp": clock.t.Add(time.Hour).Unix(),
			}
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("缺少过期时间返回无效", func() {
			claims := gojwt.MapClaims{"uid": 3}
			token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			So(err, ShouldBeNil)

			_, err = j.ValidateToken(token)
			So(err, ShouldEqual, ErrInvalidToken)
		})

		Convey("非法 uid 不能签发", func() {
			_, err := j.GenerateToken(0)
			So(err, ShouldNotBeNil)
		})
	})
}
