package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"novelhub/internal/model/auth"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/jwt"
	"novelhub/internal/pkg/password"
	"novelhub/internal/repository"
)

// 用户名、昵称长度限制（字符数）
const (
	minUsernameLen = 3
	maxUsernameLen = 32
	maxNicknameLen = 32
)

// AuthService 认证服务
// Token 只编码 uid，校验时不查库；VerifyAndResolveUser 额外确认用户仍然存在
type AuthService struct {
	users repository.UserRepository
	jwt   *jwt.JWT
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UserRepository, tokens *jwt.JWT) *AuthService {
	return &AuthService{
		users: users,
		jwt:   tokens,
	}
}

// Register 用户注册，昵称为空时使用用户名
func (s *AuthService) Register(ctx context.Context, username, pwd, nickname string) (*auth.User, error) {
	username = strings.TrimSpace(username)
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = username
	}

	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return nil, apperr.Validation("username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if !password.ValidLength(pwd) {
		return nil, apperr.Validation("password must be %d-%d bytes", password.MinLength, password.MaxLength)
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLen {
		return nil, apperr.Validation("nickname must be at most %d characters", maxNicknameLen)
	}

	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &auth.User{
		Username: username,
		Nickname: nickname,
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.ErrConflict, "username %q is taken", username)
		}
		log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, apperr.Store(err)
	}

	return user, nil
}

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	TokenType   string
	User        *auth.User
}

// Login 用户登录
// 用户不存在与密码错误返回同一种错误
func (s *AuthService) Login(ctx context.Context, username, pwd string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", username).Msg("failed to find user")
		return nil, apperr.Store(err)
	}

	if !password.Verify(pwd, user.Password) {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.UID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   int(jwt.TokenTTL.Seconds()),
		TokenType:   "Bearer",
		User:        user,
	}, nil
}

// IssueToken 为用户签发 12 小时有效的 Token
func (s *AuthService) IssueToken(uid int64) (string, error) {
	token, err := s.jwt.GenerateToken(uid)
	if err != nil {
		if errors.Is(err, jwt.ErrInvalidToken) {
			return "", apperr.Validation("uid must be positive")
		}
		log.Error().Err(err).Int64("uid", uid).Msg("failed to sign token")
		return "", err
	}
	return token, nil
}

// Verify 校验 Token 并返回其中的 uid，不访问存储
func (s *AuthService) Verify(token string) (int64, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return 0, apperr.ErrTokenExpired
		}
		return 0, apperr.ErrInvalidToken
	}
	return claims.UID, nil
}

// VerifyAndResolveUser 校验 Token 并查询用户
func (s *AuthService) VerifyAndResolveUser(ctx context.Context, token string) (*auth.User, error) {
	uid, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrUnknownUser
		}
		log.Error().Err(err).Int64("uid", uid).Msg("failed to resolve token user")
		return nil, apperr.Store(err)
	}
	return user, nil
}
