package http

import (
	"errors"
	"net/http"

	"novelhub/internal/pkg/apperr"
)

// ErrorResponse 错误响应（所有API共用）
// 用于统一错误响应格式
type ErrorResponse struct {
	Code    int    `json:"code"`             // 错误码（非0表示错误）
	Message string `json:"message"`          // 错误消息
	Detail  string `json:"detail,omitempty"` // 错误详情（可选）
}

// SuccessResponse 成功响应（所有API共用）
// 用于统一成功响应格式
type SuccessResponse struct {
	Code    int         `json:"code"`           // 状态码（0表示成功）
	Message string      `json:"message"`        // 响应消息
	Data    interface{} `json:"data,omitempty"` // 响应数据（可选）
}

// NewSuccessResponse 创建成功响应
func NewSuccessResponse(message string, data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Code:    0,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(code int, message string, detail ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Code:    code,
		Message: message,
	}
	if len(detail) > 0 && detail[0] != "" {
		resp.Detail = detail[0]
	}
	return resp
}

// errorMapping 错误种类 -> HTTP 状态码 / 业务错误码
var errorMapping = []struct {
	kind   error
	status int
	code   int
}{
	{apperr.ErrInvalidToken, http.StatusUnauthorized, 40102},
	{apperr.ErrUnknownUser, http.StatusUnauthorized, 40103},
	{apperr.ErrInvalidCredentials, http.StatusUnauthorized, 40101},
	{apperr.ErrTokenExpired, http.StatusGone, 41001},
	{apperr.ErrValidation, http.StatusBadRequest, 40001},
	{apperr.ErrInvalidPage, http.StatusBadRequest, 40002},
	{apperr.ErrForbidden, http.StatusForbidden, 40301},
	{apperr.ErrNotFound, http.StatusNotFound, 40401},
	{apperr.ErrConflict, http.StatusConflict, 40901},
	{apperr.ErrTooManyRequests, http.StatusTooManyRequests, 42901},
	{apperr.ErrStoreFailure, http.StatusInternalServerError, 50001},
}

// FromError 将服务层错误转换为 HTTP 状态码和错误响应
// 未识别的错误一律视为 500，且不向客户端暴露内部信息
func FromError(err error) (int, *ErrorResponse) {
	for _, m := range errorMapping {
		if errors.Is(err, m.kind) {
			if m.status >= http.StatusInternalServerError {
				return m.status, NewErrorResponse(m.code, m.kind.Error())
			}
			return m.status, NewErrorResponse(m.code, m.kind.Error(), apperr.DetailOf(err))
		}
	}
	return http.StatusInternalServerError, NewErrorResponse(50000, "Internal Server Error")
}
