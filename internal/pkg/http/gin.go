package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/pagination"
)

// WriteError 按错误种类写出错误响应，5xx 错误同时记录到 gin.Context 供日志中间件输出
func WriteError(c *gin.Context, err error) {
	status, resp := FromError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

// WriteBindError 请求参数绑定失败
func WriteBindError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, NewErrorResponse(40001, message, err.Error()))
}

// PageFromQuery 从 index / size 查询参数解析分页，缺省为第 1 页、每页 10 条
func PageFromQuery(c *gin.Context) (pagination.Page, error) {
	index, err := int64Query(c, "index", pagination.DefaultIndex)
	if err != nil {
		return pagination.Page{}, err
	}
	size, err := int64Query(c, "size", pagination.DefaultSize)
	if err != nil {
		return pagination.Page{}, err
	}
	return pagination.New(index, size)
}

func int64Query(c *gin.Context, key string, def int64) (int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidPage("%s must be an integer", key)
	}
	return v, nil
}

// ParseID 解析路径中的数字ID，非正整数返回 NotFound
func ParseID(c *gin.Context, key string) (int64, error) {
	raw := c.Param(key)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, apperr.NotFound("%s %q", key, raw)
	}
	return v, nil
}
