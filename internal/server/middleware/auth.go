package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"novelhub/internal/model/auth"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
)

// ContextUserKey gin.Context 中保存当前用户的 key
const ContextUserKey = "current_user"

// UserResolver 校验 Token 并返回对应用户
type UserResolver interface {
	VerifyAndResolveUser(ctx context.Context, token string) (*auth.User, error)
}

// Auth JWT 认证中间件
// 从 Authorization header 中提取 Bearer token，验证后注入 uid 到 context
func Auth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperr.New(apperr.ErrInvalidToken, "missing authorization header"))
			return
		}
		authenticate(c, resolver, header)
	}
}

// OptionalAuth 可选认证
// 没有 Authorization header 时按匿名请求处理；带了但无效时与 Auth 一样拒绝
func OptionalAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		authenticate(c, resolver, header)
	}
}

func authenticate(c *gin.Context, resolver UserResolver, header string) {
	token, err := BearerToken(header)
	if err != nil {
		abortWithError(c, err)
		return
	}

	user, err := resolver.VerifyAndResolveUser(c.Request.Context(), token)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Set(ContextUserKey, user)
	c.Request = c.Request.WithContext(ctxutil.WithUserUID(c.Request.Context(), user.UID))
	c.Next()
}

// BearerToken 提取 Token（Bearer {token}）
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", apperr.New(apperr.ErrInvalidToken, "invalid authorization header")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", apperr.New(apperr.ErrInvalidToken, "empty bearer token")
	}
	return token, nil
}

// CurrentUser 当前请求的用户，匿名请求返回 nil
func CurrentUser(c *gin.Context) *auth.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*auth.User)
	return user
}
