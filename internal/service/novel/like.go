package novel

import (
	"context"
	"errors"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/repository"
)

// ToggleLike 切换点赞状态，返回切换后的状态和最新点赞数
func (s *novelService) ToggleLike(ctx context.Context, userUID, novelUID int64) (*novel.LikeState, error) {
	if userUID <= 0 {
		return nil, apperr.ErrInvalidToken
	}
	if novelUID <= 0 {
		return nil, apperr.NotFound("novel %d", novelUID)
	}

	liked, err := s.store.Likes().Toggle(ctx, userUID, novelUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("novel %d", novelUID)
		}
		return nil, storeFailure(err, "failed to toggle like")
	}
	s.stats.InvalidateStats(ctx, userUID)

	count, err := s.store.Likes().CountByNovel(ctx, novelUID)
	if err != nil {
		return nil, storeFailure(err, "failed to count likes")
	}
	return &novel.LikeState{Liked: liked, LikeCount: count}, nil
}
