package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "novelhub/internal/handler/auth"
	httputil "novelhub/internal/pkg/http"
)

// GetProfile 用户公开资料
// @Summary      用户资料
// @Description  获取用户昵称和统计信息
// @Tags         用户
// @Produce      json
// @Param        uid  path      int  true  "用户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  httputil.ErrorResponse
// @Failure      500  {object}  httputil.ErrorResponse
// @Router       /api/v1/users/{uid} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	uid, err := httputil.ParseID(c, "uid")
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	profile, err := h.userService.Profile(c.Request.Context(), uid)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", authHandler.ProfileData{
		User:  authHandler.ToUserInfo(profile.User),
		Stats: profile.Stats,
	}))
}
