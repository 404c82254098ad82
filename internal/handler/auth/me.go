package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/apperr"
	httputil "novelhub/internal/pkg/http"
	"novelhub/internal/server/middleware"
)

// GetMe 获取当前用户信息
// @Summary      获取当前用户信息
// @Description  获取当前登录用户的资料和统计（点赞数、作品数、总浏览量）
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      410  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httputil.WriteError(c, apperr.ErrInvalidToken)
		return
	}

	stats, err := h.userService.Stats(c.Request.Context(), user.UID)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", ProfileData{
		User:  ToUserInfo(user),
		Stats: *stats,
	}))
}
