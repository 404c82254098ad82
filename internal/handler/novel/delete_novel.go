package novel

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// DeleteNovel 删除小说
// @Summary      删除小说
// @Description  只有作者可以删除，小说的点赞记录一并删除
// @Tags         小说
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "小说ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/novels/{id} [delete]
func (h *Handler) DeleteNovel(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	requester, _ := ctxutil.GetUserUID(ctx)

	if err := h.novelService.DeleteNovel(ctx, requester, id); err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("删除成功", nil))
}
