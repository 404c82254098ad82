package novel

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"novelhub/internal/pkg/ctxutil"
	httputil "novelhub/internal/pkg/http"
	"novelhub/internal/service/novel"
)

// CreateNovelRequest 发布小说请求
type CreateNovelRequest struct {
	Title     string `json:"title"`               // 标题（必填，最多200字符）
	Content   string `json:"content"`             // 正文（必填）
	Thumbnail string `json:"thumbnail,omitempty"` // 缩略图URL（可选，通常来自 /images 上传结果）
	Category  string `json:"category"`            // 分类（必填）
}

// CreateNovelResponseData 发布小说响应数据
type CreateNovelResponseData struct {
	UID int64 `json:"uid"` // 小说ID
}

// CreateNovel 发布小说
// @Summary      发布小说
// @Tags         小说
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateNovelRequest  true  "发布请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/novels [post]
func (h *Handler) CreateNovel(c *gin.Context) {
	var req CreateNovelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.WriteBindError(c, "Invalid request body", err)
		return
	}

	ctx := c.Request.Context()
	owner, _ := ctxutil.GetUserUID(ctx)

	uid, err := h.novelService.CreateNovel(ctx, owner, novel.CreateNovelInput{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Category:  req.Category,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httputil.NewSuccessResponse("发布成功", CreateNovelResponseData{UID: uid}))
}
