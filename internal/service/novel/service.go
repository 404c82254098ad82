// Package novel 小说列表、详情、点赞和发布删除
package novel

import (
	"context"

	"github.com/rs/zerolog/log"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/pagination"
	"novelhub/internal/repository"
)

// NovelService 小说服务接口
// viewerUID 为 0 表示匿名访问，此时结果不带 liked 标记
type NovelService interface {
	// ListByViewType 全站列表，按最新或热门排序
	ListByViewType(ctx context.Context, viewType novel.ViewType, page pagination.Page, viewerUID int64) (*FeedPage, error)

	// ListByCategory 分类列表，按 uid 正序
	ListByCategory(ctx context.Context, category string, page pagination.Page, viewerUID int64) (*FeedPage, error)

	// Search 标题搜索（不区分大小写），排序同 ListByViewType
	Search(ctx context.Context, query string, viewType novel.ViewType, page pagination.Page, viewerUID int64) (*FeedPage, error)

	// ListByUser 用户发布或点赞的作品，按 uid 倒序
	ListByUser(ctx context.Context, userUID int64, feedType novel.FeedType, page pagination.Page, viewerUID int64) (*FeedPage, error)

	// GetDetail 小说详情，每次调用浏览量加一
	GetDetail(ctx context.Context, novelUID, viewerUID int64) (*FeedItem, error)

	// ToggleLike 切换点赞状态
	ToggleLike(ctx context.Context, userUID, novelUID int64) (*novel.LikeState, error)

	// CreateNovel 发布小说，返回新小说的 uid
	CreateNovel(ctx context.Context, ownerUID int64, in CreateNovelInput) (int64, error)

	// DeleteNovel 删除小说及其点赞，只有作者可以删除
	DeleteNovel(ctx context.Context, requesterUID, novelUID int64) error
}

// StatsInvalidator 用户统计缓存失效
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context, uids ...int64)
}

// FeedItem 列表项及详情
type FeedItem struct {
	*novel.Novel
	Nickname  string `json:"nickname"`
	LikeCount int64  `json:"like_count"`
	Liked     *bool  `json:"liked,omitempty"`
}

// FeedPage 一页列表及分页信息
type FeedPage struct {
	Data []*FeedItem     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// novelService 小说服务实现
type novelService struct {
	store     repository.Store
	paginator *Paginator
	stats     StatsInvalidator
}

// NewNovelService 创建小说服务，stats 可以为 nil
func NewNovelService(store repository.Store, stats StatsInvalidator) NovelService {
	if stats == nil {
		stats = noopInvalidator{}
	}
	return &novelService{
		store:     store,
		paginator: NewPaginator(store.Novels()),
		stats:     stats,
	}
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateStats(context.Context, ...int64) {}

// storeFailure 记录存储错误并包装为 StoreFailure
func storeFailure(err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return apperr.Store(err)
}
