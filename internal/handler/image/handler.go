package image

import (
	"novelhub/internal/service"
)

// Handler 图片模块处理器
type Handler struct {
	imageService *service.ImageService
}

// NewHandler 创建图片模块处理器
func NewHandler(imageService *service.ImageService) *Handler {
	return &Handler{
		imageService: imageService,
	}
}
