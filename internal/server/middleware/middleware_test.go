package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"novelhub/internal/config"
	"novelhub/internal/model/auth"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/cache"
	"novelhub/internal/pkg/ctxutil"
)

type fakeResolver struct{}

func (fakeResolver) VerifyAndResolveUser(_ context.Context, token string) (*auth.User, error) {
	switch token {
	case "good":
		return &auth.User{UID: 7, Username: "alice"}, nil
	case "expired":
		return nil, apperr.ErrTokenExpired
	case "ghost":
		return nil, apperr.ErrUnknownUser
	default:
		return nil, apperr.ErrInvalidToken
	}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) {
		uid, _ := ctxutil.GetUserUID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	return r
}

func do(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	Convey("BearerToken", t, func() {
		token, err := BearerToken("Bearer abc")
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "abc")

		token, err = BearerToken("bearer  abc ")
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "abc")

		for _, bad := range []string{"abc", "Basic abc", "Bearer", "Bearer   "} {
			_, err := BearerToken(bad)
			So(errors.Is(err, apperr.ErrInvalidToken), ShouldBeTrue)
		}
	})
}

func TestAuth(t *testing.T) {
	Convey("Auth", t, func() {
		r := newEngine(Auth(fakeResolver{}))

		So(do(r, "Bearer good").Code, ShouldEqual, http.StatusOK)
		So(do(r, "").Code, ShouldEqual, http.StatusUnauthorized)
		So(do(r, "Bearer bad").Code, ShouldEqual, http.StatusUnauthorized)
		So(do(r, "Bearer ghost").Code, ShouldEqual, http.StatusUnauthorized)
		So(do(r, "Bearer expired").Code, ShouldEqual, http.StatusGone)
		So(do(r, "Token good").Code, ShouldEqual, http.StatusUnauthorized)
	})

	Convey("OptionalAuth", t, func() {
		r := newEngine(OptionalAuth(fakeResolver{}))

		w := do(r, "")
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, `"uid":0`)

		w = do(r, "Bearer good")
		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Body.String(), ShouldContainSubstring, `"uid":7`)

		So(do(r, "Bearer expired").Code, ShouldEqual, http.StatusGone)
	})
}

func TestRateLimit(t *testing.T) {
	Convey("RateLimit", t, func() {
		mr := miniredis.RunT(t)
		rc, err := cache.NewRedisCache(&config.RedisConfig{Addr: mr.Addr()})
		So(err, ShouldBeNil)
		defer rc.Close()

		r := newEngine(Auth(fakeResolver{}), RateLimit(rc, "test", 2, time.Minute))
		So(do(r, "Bearer good").Code, ShouldEqual, http.StatusOK)
		So(do(r, "Bearer good").Code, ShouldEqual, http.StatusOK)
		So(do(r, "Bearer good").Code, ShouldEqual, http.StatusTooManyRequests)

		Convey("Redis 不可用时放行", func() {
			mr.Close()
			So(do(r, "Bearer good").Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestRequestIDAndRecovery(t *testing.T) {
	Convey("RequestID 与 Recovery", t, func() {
		r := gin.New()
		r.Use(Recovery(), RequestID(), Logger(), CORS())
		r.GET("/panic", func(c *gin.Context) { panic("boom") })

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		req.Header.Set(RequestIDHeader, "rid-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		So(w.Code, ShouldEqual, http.StatusInternalServerError)
		So(w.Header().Get(RequestIDHeader), ShouldEqual, "rid-1")
		So(w.Body.String(), ShouldContainSubstring, "50000")

		req = httptest.NewRequest(http.MethodOptions, "/panic", nil)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		So(w.Code, ShouldEqual, http.StatusNoContent)
		So(w.Header().Get(RequestIDHeader), ShouldNotBeEmpty)
	})
}
