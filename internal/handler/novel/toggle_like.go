package novel

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// ToggleLikeRequest 点赞请求，body 可省略
type ToggleLikeRequest struct {
	UserUID int64 `json:"user_uid,omitempty"` // 点赞用户（可选，必须与 Token 用户一致）
}

// ToggleLike 点赞 / 取消点赞
// @Summary      切换点赞
// @Description  未点赞时点赞，已点赞时取消
// @Tags         小说
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                false  "小说ID"
// @Param        request  body      ToggleLikeRequest  false  "点赞请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/novels/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteBindError(c, "Invalid request body", err)
		return
	}

	ctx := c.Request.Context()
	liker, _ := ctxutil.GetUserUID(ctx)
	if req.UserUID != 0 && req.UserUID != liker {
		httputil.WriteError(c, apperr.New(apperr.ErrForbidden, "user_uid does not match token"))
		return
	}

	state, err := h.novelService.ToggleLike(ctx, liker, id)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", state))
}
