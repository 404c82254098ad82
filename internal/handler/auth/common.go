package auth

import (
	"time"

	"novelhub/internal/model/auth"
	httputil "novelhub/internal/pkg/http"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	UID       int64  `json:"uid"`                  // 用户ID
	Username  string `json:"username"`             // 用户名
	Nickname  string `json:"nickname"`             // 昵称
	CreatedAt string `json:"created_at,omitempty"` // 创建时间
}

// ToUserInfo 将User实体转换为UserInfo
func ToUserInfo(user *auth.User) UserInfo {
	info := UserInfo{
		UID:      user.UID,
		Username: user.Username,
		Nickname: user.Nickname,
	}
	if !user.CreatedAt.IsZero() {
		info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return info
}

// ProfileData 用户资料及统计
type ProfileData struct {
	User  UserInfo       `json:"user"`
	Stats auth.UserStats `json:"stats"`
}
