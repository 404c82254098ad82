// Package repository 定义 service 层依赖的存储接口
// 实现位于 sqlstore（gorm：mysql/sqlite）和 mongostore（MongoDB）
package repository

import (
	"context"
	"errors"

	"novelhub/internal/model/auth"
	"novelhub/internal/model/novel"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 违反唯一约束
	ErrDuplicate = errors.New("duplicate record")
)

// MaxToggleAttempts 点赞切换遇到并发插入冲突时的最大重试次数
const MaxToggleAttempts = 5

// UserRepository 用户仓库
type UserRepository interface {
	// Create 创建用户并回填 UID；用户名重复返回 ErrDuplicate
	Create(ctx context.Context, user *auth.User) error
	FindByUID(ctx context.Context, uid int64) (*auth.User, error)
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
	// FindByUIDs 批量查询，不存在的 uid 不出现在结果中
	FindByUIDs(ctx context.Context, uids []int64) (map[int64]*auth.User, error)
}

// NovelRepository 小说仓库
type NovelRepository interface {
	// Create 创建小说并回填 UID
	Create(ctx context.Context, n *novel.Novel) error
	FindByUID(ctx context.Context, uid int64) (*novel.Novel, error)
	// IncrementViews 原子地将浏览量加一并返回更新后的记录
	IncrementViews(ctx context.Context, uid int64) (*novel.Novel, error)
	List(ctx context.Context, filter novel.Filter, order novel.Order, offset, limit int64) ([]*novel.Novel, error)
	Count(ctx context.Context, filter novel.Filter) (int64, error)
	// SumViews 作者所有作品的浏览量之和
	SumViews(ctx context.Context, ownerUID int64) (int64, error)
	// Delete 在同一事务中删除小说及其所有点赞
	Delete(ctx context.Context, uid int64) error
}

// LikeRepository 点赞仓库
type LikeRepository interface {
	// Toggle 切换点赞状态，返回切换后是否为已点赞；小说不存在返回 ErrNotFound
	Toggle(ctx context.Context, userUID, novelUID int64) (bool, error)
	Exists(ctx context.Context, userUID, novelUID int64) (bool, error)
	CountByNovel(ctx context.Context, novelUID int64) (int64, error)
	// CountByNovels 批量统计点赞数，没有点赞的小说不出现在结果中
	CountByNovels(ctx context.Context, novelUIDs []int64) (map[int64]int64, error)
	// LikedNovels 返回 novelUIDs 中被该用户点赞过的集合
	LikedNovels(ctx context.Context, userUID int64, novelUIDs []int64) (map[int64]bool, error)
	CountByUser(ctx context.Context, userUID int64) (int64, error)
}

// Store 存储句柄，进程启动时创建一次，所有组件共享
type Store interface {
	Users() UserRepository
	Novels() NovelRepository
	Likes() LikeRepository
	// Migrate 创建表结构或索引
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
