package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL Token 固定有效期
const TokenTTL = 12 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims JWT Claims结构
// UID 为用户的数字ID，解析时必须为正数
type Claims struct {
	UID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// JWT JWT工具
type JWT struct {
	secret []byte
	now    func() time.Time
}

// Option JWT 可选项
type Option func(*JWT)

// WithClock 替换时间来源（测试用）
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT 创建JWT工具实例
func NewJWT(secret string, opts ...Option) *JWT {
	j := &JWT{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateToken 生成 Token，有效期为 TokenTTL
func (j *JWT) GenerateToken(uid int64) (string, error) {
	if uid <= 0 {
		return "", ErrInvalidToken
	}

	// NumericDate 只精确到秒：签发时间向下取整，过期时间向上取整，保证签发后完整的 TokenTTL 内有效
	now := j.now()
	issuedAt := now.Truncate(time.Second)
	expiresAt := now.Add(TokenTTL)
	if t := expiresAt.Truncate(time.Second); t.Before(expiresAt) {
		expiresAt = t.Add(time.Second)
	}

	claims := &Claims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateToken 验证Token并返回Claims
func (j *JWT) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)

	if err != nil {
		// jwt/v5 使用 errors.Is 来检查错误类型
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
