// Package pagination 负责分页参数校验和分页元数据计算
// index 从 1 开始，存储层使用 Offset() 得到的 0 起始偏移量
package pagination

import (
	"math"

	"novelhub/internal/pkg/apperr"
)

const (
	DefaultIndex int64 = 1
	DefaultSize  int64 = 10
	MaxSize      int64 = 100
)

// Page 已校验的分页参数
type Page struct {
	Index int64
	Size  int64
}

// Meta 分页元数据
type Meta struct {
	Index      int64 `json:"index"`
	Size       int64 `json:"size"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// New 校验并创建分页参数
func New(index, size int64) (Page, error) {
	if index < 1 {
		return Page{}, apperr.InvalidPage("index must be >= 1, got %d", index)
	}
	if size < 1 {
		return Page{}, apperr.InvalidPage("size must be >= 1, got %d", size)
	}
	if size > MaxSize {
		return Page{}, apperr.InvalidPage("size must be <= %d, got %d", MaxSize, size)
	}
	// (index-1)*size 不能溢出
	if index-1 > math.MaxInt64/size {
		return Page{}, apperr.InvalidPage("index %d is too large", index)
	}
	return Page{Index: index, Size: size}, nil
}

// Offset 0 起始的跳过条数
func (p Page) Offset() int64 {
	return (p.Index - 1) * p.Size
}

// Limit 单页条数
func (p Page) Limit() int64 {
	return p.Size
}

// Meta 根据总条数计算分页元数据，总页数至少为 1
func (p Page) Meta(totalCount int64) Meta {
	return Meta{
		Index:      p.Index,
		Size:       p.Size,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, p.Size),
	}
}

// TotalPages ceil(total/size)，最小为 1
func TotalPages(totalCount, size int64) int64 {
	if size < 1 || totalCount <= 0 {
		return 1
	}
	return (totalCount + size - 1) / size
}
