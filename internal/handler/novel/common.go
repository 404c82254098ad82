package novel

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httputil "novelhub/internal/pkg/http"
	"novelhub/internal/service/novel"
)

// ErrorResponse 错误响应类型别名（使用共用的 http.ErrorResponse）
type ErrorResponse = httputil.ErrorResponse

// FeedPage 列表响应数据：{data: [...], meta: {index, size, totalCount, totalPages}}
type FeedPage = novel.FeedPage

// writeFeed 写出列表结果
func writeFeed(c *gin.Context, page *FeedPage, err error) {
	if err != nil {
		httputil.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, httputil.NewSuccessResponse("success", page))
}
