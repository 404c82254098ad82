package novel

import (
	"github.com/gin-gonic/gin"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// SearchNovels 按标题搜索
// @Summary      搜索小说
// @Description  标题包含 query（不区分大小写），排序同列表接口
// @Tags         小说
// @Produce      json
// @Param        query      query     string  true   "搜索词"
// @Param        view_type  query     string  false  "latest | popular"
// @Param        index      query     int     false  "页码（从1开始）"
// @Param        size       query     int     false  "每页条数（1-100）"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  ErrorResponse
// @Router       /api/v1/novels/search [get]
func (h *Handler) SearchNovels(c *gin.Context) {
	viewType, ok := novel.ParseViewType(c.Query("view_type"))
	if !ok {
		httputil.WriteError(c, apperr.Validation("unknown view_type %q", c.Query("view_type")))
		return
	}

	page, err := httputil.PageFromQuery(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	viewer, _ := ctxutil.GetUserUID(ctx)
	result, err := h.novelService.Search(ctx, c.Query("query"), viewType, page, viewer)
	writeFeed(c, result, err)
}
