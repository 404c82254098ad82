package novel

import (
	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// ListByCategory 分类小说列表
// @Summary      分类列表
// @Tags         小说
// @Produce      json
// @Param        category  query     string  true   "分类"
// @Param        index     query     int     false  "页码（从1开始）"
// @Param        size      query     int     false  "每页条数（1-100）"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  ErrorResponse
// @Router       /api/v1/novels/category [get]
func (h *Handler) ListByCategory(c *gin.Context) {
	page, err := httputil.PageFromQuery(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	viewer, _ := ctxutil.GetUserUID(ctx)
	result, err := h.novelService.ListByCategory(ctx, c.Query("category"), page, viewer)
	writeFeed(c, result, err)
}
