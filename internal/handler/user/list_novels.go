package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// ListNovels 用户发布或点赞的作品
// @Summary      用户作品列表
// @Description  feed_type=authored 返回用户发布的作品，feed_type=liked 返回用户点赞的作品，均按 uid 倒序
// @Tags         用户
// @Produce      json
// @Param        uid        path      int     true   "用户ID"
// @Param        feed_type  query     string  false  "authored | liked"
// @Param        index      query     int     false  "页码（从1开始）"
// @Param        size       query     int     false  "每页条数（1-100）"
// @Success      200        {object}  map[string]interface{}
// @Failure      400        {object}  httputil.ErrorResponse
// @Failure      404        {object}  httputil.ErrorResponse
// @Router       /api/v1/users/{uid}/novels [get]
func (h *Handler) ListNovels(c *gin.Context) {
	uid, err := httputil.ParseID(c, "uid")
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	feedType, ok := novel.ParseFeedType(c.Query("feed_type"))
	if !ok {
		httputil.WriteError(c, apperr.Validation("unknown feed_type %q", c.Query("feed_type")))
		return
	}

	page, err := httputil.PageFromQuery(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	viewer, _ := ctxutil.GetUserUID(ctx)

	result, err := h.novelService.ListByUser(ctx, uid, feedType, page, viewer)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", result))
}
