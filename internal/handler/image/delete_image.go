package image

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// DeleteImage 删除自己上传的缩略图
// @Summary      删除缩略图
// @Tags         图片
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "上传时返回的 key"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse  "不是自己上传的图片"
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/images/{key} [delete]
func (h *Handler) DeleteImage(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")

	ctx := c.Request.Context()
	owner, _ := ctxutil.GetUserUID(ctx)

	if err := h.imageService.Delete(ctx, owner, key); err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("删除成功", nil))
}
