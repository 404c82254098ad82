package image

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
)

// UploadImageResponseData 上传图片响应数据
type UploadImageResponseData struct {
	Key      string `json:"key"`       // 存储路径，删除时使用
	URL      string `json:"url"`       // 访问URL，可直接作为小说 thumbnail
	FileSize int64  `json:"file_size"` // 文件大小
	FileName string `json:"file_name"` // 原始文件名
}

// UploadImage 上传缩略图（multipart/form-data）
// @Summary      上传缩略图
// @Description  支持 jpeg/png/gif/webp，返回的 url 用于发布小说时的 thumbnail 字段
// @Tags         图片
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "图片文件"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  ErrorResponse  "请求参数错误"
// @Failure      401   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse  "服务器内部错误"
// @Router       /api/v1/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.imageService.MaxBytes()+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		httputil.WriteBindError(c, "Invalid file", err)
		return
	}
	if file.Size > h.imageService.MaxBytes() {
		httputil.WriteError(c, apperr.Validation("file exceeds %d bytes", h.imageService.MaxBytes()))
		return
	}

	reader, err := file.Open()
	if err != nil {
		httputil.WriteBindError(c, "Failed to open file", err)
		return
	}
	defer reader.Close()

	ctx := c.Request.Context()
	owner, _ := ctxutil.GetUserUID(ctx)

	result, err := h.imageService.Upload(ctx, owner, file.Header.Get("Content-Type"), file.Size, reader)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.NewSuccessResponse("上传成功", UploadImageResponseData{
		Key:      result.Key,
		URL:      result.URL,
		FileSize: file.Size,
		FileName: file.Filename,
	}))
}
