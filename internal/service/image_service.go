package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/id"
	"novelhub/internal/pkg/storage"
)

// DefaultMaxUploadBytes 缩略图默认大小上限
const DefaultMaxUploadBytes int64 = 5 << 20

// ThumbnailPrefix 缩略图 key 前缀，完整 key 为 thumbnails/<uid>/<随机名><扩展名>
const ThumbnailPrefix = "thumbnails"

// 允许的图片类型及其扩展名
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageService 缩略图上传服务
type ImageService struct {
	storage  storage.Storage
	maxBytes int64
}

// NewImageService 创建缩略图服务
func NewImageService(st storage.Storage, maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &ImageService{storage: st, maxBytes: maxBytes}
}

// MaxBytes 单个文件大小上限
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// UploadResult 上传结果
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Upload 上传缩略图
// contentType 取 MIME 主体部分校验，size 为客户端声明的大小，读取时仍按上限截断校验
func (s *ImageService) Upload(ctx context.Context, ownerUID int64, contentType string, size int64, data io.Reader) (*UploadResult, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := imageExtensions[mediaType]
	if !ok {
		return nil, apperr.Validation("unsupported image type %q", contentType)
	}
	if size <= 0 {
		return nil, apperr.Validation("file is empty")
	}
	if size > s.maxBytes {
		return nil, apperr.Validation("file exceeds %d bytes", s.maxBytes)
	}

	key := path.Join(ThumbnailPrefix, fmt.Sprint(ownerUID), id.Compact()+ext)
	url, err := s.storage.Upload(ctx, key, io.LimitReader(data, s.maxBytes), mediaType)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload thumbnail")
		return nil, apperr.Store(err)
	}

	log.Info().Int64("uid", ownerUID).Str("key", key).Int64("size", size).Msg("thumbnail uploaded")
	return &UploadResult{Key: key, URL: url}, nil
}

// Delete 删除缩略图，只能删除自己前缀下的文件
func (s *ImageService) Delete(ctx context.Context, ownerUID int64, key string) error {
	cleaned, err := storage.CleanKey(strings.TrimPrefix(key, "/"))
	if err != nil {
		return apperr.Validation("invalid key")
	}
	prefix := path.Join(ThumbnailPrefix, fmt.Sprint(ownerUID)) + "/"
	if !strings.HasPrefix(cleaned, prefix) {
		return apperr.ErrForbidden
	}

	exists, err := s.storage.Exists(ctx, cleaned)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return apperr.Validation("invalid key")
		}
		log.Error().Err(err).Str("key", cleaned).Msg("failed to check thumbnail")
		return apperr.Store(err)
	}
	if !exists {
		return apperr.NotFound("image %s", cleaned)
	}

	if err := s.storage.Delete(ctx, cleaned); err != nil {
		log.Error().Err(err).Str("key", cleaned).Msg("failed to delete thumbnail")
		return apperr.Store(err)
	}
	return nil
}
