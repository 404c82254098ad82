package novel

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/repository"
)

// 字段长度上限（字符数）
const (
	MaxTitleLength     = 200
	MaxCategoryLength  = 64
	MaxThumbnailLength = 512
)

// CreateNovelInput 发布参数
type CreateNovelInput struct {
	Title     string
	Content   string
	Thumbnail string
	Category  string
}

// normalize 去除首尾空白并校验
func (in *CreateNovelInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Thumbnail = strings.TrimSpace(in.Thumbnail)

	switch {
	case in.Title == "":
		return apperr.Validation("title is required")
	case strings.TrimSpace(in.Content) == "":
		return apperr.Validation("content is required")
	case in.Category == "":
		return apperr.Validation("category is required")
	case utf8.RuneCountInString(in.Title) > MaxTitleLength:
		return apperr.Validation("title must be at most %d characters", MaxTitleLength)
	case utf8.RuneCountInString(in.Category) > MaxCategoryLength:
		return apperr.Validation("category must be at most %d characters", MaxCategoryLength)
	case len(in.Thumbnail) > MaxThumbnailLength:
		return apperr.Validation("thumbnail must be at most %d bytes", MaxThumbnailLength)
	}
	return nil
}

// CreateNovel 发布小说，浏览量从 0 开始
func (s *novelService) CreateNovel(ctx context.Context, ownerUID int64, in CreateNovelInput) (int64, error) {
	if err := in.normalize(); err != nil {
		return 0, err
	}

	if _, err := s.store.Users().FindByUID(ctx, ownerUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperr.ErrUnknownUser
		}
		return 0, storeFailure(err, "failed to find novel owner")
	}

	n := &novel.Novel{
		UserUID:   ownerUID,
		Title:     in.Title,
		Content:   in.Content,
		Thumbnail: in.Thumbnail,
		Category:  in.Category,
	}
	if err := s.store.Novels().Create(ctx, n); err != nil {
		return 0, storeFailure(err, "failed to create novel")
	}
	s.stats.InvalidateStats(ctx, ownerUID)

	log.Info().Int64("uid", n.UID).Int64("owner", ownerUID).Str("category", n.Category).Msg("novel created")
	return n.UID, nil
}

// DeleteNovel 删除小说，点赞在同一事务中删除
func (s *novelService) DeleteNovel(ctx context.Context, requesterUID, novelUID int64) error {
	n, err := s.store.Novels().FindByUID(ctx, novelUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("novel %d", novelUID)
		}
		return storeFailure(err, "failed to find novel")
	}
	if n.UserUID != requesterUID {
		return apperr.New(apperr.ErrForbidden, "novel %d belongs to another user", novelUID)
	}

	if err := s.store.Novels().Delete(ctx, novelUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("novel %d", novelUID)
		}
		return storeFailure(err, "failed to delete novel")
	}
	s.stats.InvalidateStats(ctx, n.UserUID)

	log.Info().Int64("uid", novelUID).Int64("owner", n.UserUID).Msg("novel deleted")
	return nil
}
