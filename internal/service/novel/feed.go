package novel

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/pagination"
	"novelhub/internal/repository"
)

// ListByViewType 全站列表
func (s *novelService) ListByViewType(ctx context.Context, viewType novel.ViewType, page pagination.Page, viewerUID int64) (*FeedPage, error) {
	return s.assemble(ctx, novel.Filter{}, novel.OrderOf(viewType), page, viewerUID)
}

// ListByCategory 分类列表
func (s *novelService) ListByCategory(ctx context.Context, category string, page pagination.Page, viewerUID int64) (*FeedPage, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperr.Validation("category is required")
	}
	return s.assemble(ctx, novel.Filter{Category: category}, novel.OrderUIDAsc, page, viewerUID)
}

// Search 标题搜索，与其他列表使用相同的分页
func (s *novelService) Search(ctx context.Context, query string, viewType novel.ViewType, page pagination.Page, viewerUID int64) (*FeedPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("query is required")
	}
	return s.assemble(ctx, novel.Filter{TitleContains: query}, novel.OrderOf(viewType), page, viewerUID)
}

// ListByUser 用户发布或点赞的作品
func (s *novelService) ListByUser(ctx context.Context, userUID int64, feedType novel.FeedType, page pagination.Page, viewerUID int64) (*FeedPage, error) {
	if _, err := s.store.Users().FindByUID(ctx, userUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %d", userUID)
		}
		return nil, storeFailure(err, "failed to find user")
	}

	var filter novel.Filter
	switch feedType {
	case novel.FeedTypeAuthored:
		filter.OwnerUID = userUID
	case novel.FeedTypeLiked:
		filter.LikedByUID = userUID
	default:
		return nil, apperr.Validation("unknown feed type %q", feedType)
	}
	return s.assemble(ctx, filter, novel.OrderLatest, page, viewerUID)
}

// assemble 查询一页数据、统计总数并补全昵称和点赞信息
func (s *novelService) assemble(ctx context.Context, filter novel.Filter, order novel.Order, page pagination.Page, viewerUID int64) (*FeedPage, error) {
	novels, err := s.store.Novels().List(ctx, filter, order, page.Offset(), page.Limit())
	if err != nil {
		return nil, storeFailure(err, "failed to list novels")
	}

	meta, err := s.paginator.Metadata(ctx, page, filter)
	if err != nil {
		return nil, err
	}

	items, err := s.decorate(ctx, novels, viewerUID)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Data: items, Meta: meta}, nil
}

// decorate 批量补全作者昵称、点赞数和当前用户的点赞状态
func (s *novelService) decorate(ctx context.Context, novels []*novel.Novel, viewerUID int64) ([]*FeedItem, error) {
	items := make([]*FeedItem, 0, len(novels))
	if len(novels) == 0 {
		return items, nil
	}

	novelUIDs := make([]int64, 0, len(novels))
	ownerUIDs := make([]int64, 0, len(novels))
	seen := make(map[int64]struct{}, len(novels))
	for _, n := range novels {
		novelUIDs = append(novelUIDs, n.UID)
		if _, ok := seen[n.UserUID]; !ok {
			seen[n.UserUID] = struct{}{}
			ownerUIDs = append(ownerUIDs, n.UserUID)
		}
	}

	owners, err := s.store.Users().FindByUIDs(ctx, ownerUIDs)
	if err != nil {
		return nil, storeFailure(err, "failed to load novel owners")
	}
	counts, err := s.store.Likes().CountByNovels(ctx, novelUIDs)
	if err != nil {
		return nil, storeFailure(err, "failed to count likes")
	}
	var liked map[int64]bool
	if viewerUID > 0 {
		liked, err = s.store.Likes().LikedNovels(ctx, viewerUID, novelUIDs)
		if err != nil {
			return nil, storeFailure(err, "failed to load viewer likes")
		}
	}

	for _, n := range novels {
		item := &FeedItem{Novel: n, LikeCount: counts[n.UID]}
		if owner, ok := owners[n.UserUID]; ok {
			item.Nickname = owner.Nickname
		} else {
			log.Warn().Int64("novel_uid", n.UID).Int64("user_uid", n.UserUID).Msg("novel owner not found")
		}
		if viewerUID > 0 {
			v := liked[n.UID]
			item.Liked = &v
		}
		items = append(items, item)
	}
	return items, nil
}
