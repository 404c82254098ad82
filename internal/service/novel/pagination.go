package novel

import (
	"context"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/pagination"
	"novelhub/internal/repository"
)

// Paginator 按过滤条件统计总数并生成分页元数据
type Paginator struct {
	novels repository.NovelRepository
}

// NewPaginator 创建分页计算器
func NewPaginator(novels repository.NovelRepository) *Paginator {
	return &Paginator{novels: novels}
}

// Metadata 分页元数据，totalCount 为满足 filter 的小说数
func (p *Paginator) Metadata(ctx context.Context, page pagination.Page, filter novel.Filter) (pagination.Meta, error) {
	total, err := p.novels.Count(ctx, filter)
	if err != nil {
		return pagination.Meta{}, storeFailure(err, "failed to count novels")
	}
	return page.Meta(total), nil
}
