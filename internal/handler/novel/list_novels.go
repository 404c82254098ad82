package novel

import (
	"github.com/gin-gonic/gin"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// ListNovels 全站小说列表
// @Summary      小说列表
// @Description  view_type=latest 按发布先后倒序，view_type=popular 按浏览量倒序（相同时 uid 大的在前）
// @Tags         小说
// @Produce      json
// @Param        view_type  query     string  false  "latest | popular"
// @Param        index      query     int     false  "页码（从1开始）"
// @Param        size       query     int     false  "每页条数（1-100）"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  ErrorResponse
// @Router       /api/v1/novels [get]
func (h *Handler) ListNovels(c *gin.Context) {
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
	result, err := h.novelService.ListByViewType(ctx, viewType, page, viewer)
	writeFeed(c, result, err)
}
