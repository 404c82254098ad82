package novel

import (
	"context"
	"errors"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/repository"
)

// GetDetail 小说详情
// 先原子地增加浏览量并取回更新后的记录，小说不存在时不做任何修改
func (s *novelService) GetDetail(ctx context.Context, novelUID, viewerUID int64) (*FeedItem, error) {
	if novelUID <= 0 {
		return nil, apperr.NotFound("novel %d", novelUID)
	}

	n, err := s.store.Novels().IncrementViews(ctx, novelUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("novel %d", novelUID)
		}
		return nil, storeFailure(err, "failed to increment views")
	}

	items, err := s.decorate(ctx, []*novel.Novel{n}, 0)
	if err != nil {
		return nil, err
	}
	item := items[0]

	if viewerUID > 0 {
		liked, err := s.store.Likes().Exists(ctx, viewerUID, novelUID)
		if err != nil {
			return nil, storeFailure(err, "failed to check viewer like")
		}
		item.Liked = &liked
	}
	return item, nil
}
