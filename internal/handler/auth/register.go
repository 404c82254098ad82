package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "novelhub/internal/pkg/http"
)

// RegisterRequest 用户注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // 用户名（必填，3-32字符）
	Password string `json:"password" binding:"required"` // 密码（必填，至少6位）
	Nickname string `json:"nickname,omitempty"`          // 昵称（可选，默认为用户名）
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册新用户
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, "Invalid request body", err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.NewSuccessResponse("注册成功", ToUserInfo(user)))
}
