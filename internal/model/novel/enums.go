package novel

import "strings"

// ViewType 列表排序方式
type ViewType string

const (
	ViewTypeLatest  ViewType = "latest"  // 最新：按 uid 倒序
	ViewTypePopular ViewType = "popular" // 热门：按浏览量倒序，uid 倒序
)

// ParseViewType 解析排序方式（不区分大小写），空串默认为 latest
func ParseViewType(s string) (ViewType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latest":
		return ViewTypeLatest, true
	case "popular":
		return ViewTypePopular, true
	default:
		return "", false
	}
}

// FeedType 用户作品列表类型
type FeedType string

const (
	FeedTypeAuthored FeedType = "authored" // 用户发布的作品
	FeedTypeLiked    FeedType = "liked"    // 用户点赞的作品
)

// ParseFeedType 解析用户作品列表类型（不区分大小写），空串默认为 authored
func ParseFeedType(s string) (FeedType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "authored", "user_authored":
		return FeedTypeAuthored, true
	case "liked", "user_liked":
		return FeedTypeLiked, true
	default:
		return "", false
	}
}

// Order 存储层排序
type Order int

const (
	OrderUIDAsc  Order = iota // uid 正序（分类列表的稳定顺序）
	OrderLatest               // uid 倒序
	OrderPopular              // views 倒序，uid 倒序
)

// OrderOf 排序方式对应的存储层排序
func OrderOf(v ViewType) Order {
	if v == ViewTypePopular {
		return OrderPopular
	}
	return OrderLatest
}

// Filter 列表过滤条件，零值字段不参与过滤
type Filter struct {
	Category      string // 分类（精确匹配）
	TitleContains string // 标题包含（不区分大小写）
	OwnerUID      int64  // 作者
	LikedByUID    int64  // 点赞者
}
