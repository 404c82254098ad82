package user

import (
	"novelhub/internal/service"
	"novelhub/internal/service/novel"
)

// Handler 用户处理器
type Handler struct {
	userService  *service.UserService
	novelService novel.NovelService
}

// NewHandler 创建用户处理器
func NewHandler(userService *service.UserService, novelService novel.NovelService) *Handler {
	return &Handler{
		userService:  userService,
		novelService: novelService,
	}
}
