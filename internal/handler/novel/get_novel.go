package novel

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// GetNovel 获取小说详情
// @Summary      获取小说详情
// @Description  返回小说、作者昵称和点赞数；带 Token 时额外返回是否已点赞。每次请求浏览量加一
// @Tags         小说
// @Produce      json
// @Param        id   path      int  true  "小说ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse  "小说不存在"
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/novels/{id} [get]
func (h *Handler) GetNovel(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	viewer, _ := ctxutil.GetUserUID(ctx)

	detail, err := h.novelService.GetDetail(ctx, id, viewer)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", detail))
}
