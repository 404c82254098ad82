// Package mongostore 基于 MongoDB 的存储实现
// uid 由 counters 集合生成，删除级联和点赞切换依赖多文档事务
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"novelhub/internal/config"
	"novelhub/internal/pkg/mongodb"
	"novelhub/internal/repository"
)

// Store MongoDB 存储
type Store struct {
	client *mongodb.Client
	users  *UserRepo
	novels *NovelRepo
	likes  *LikeRepo
}

var _ repository.Store = (*Store)(nil)

// Open 连接 MongoDB 并创建存储
func Open(cfg *config.MongoConfig) (*Store, error) {
	client, err := mongodb.New(cfg)
	if err != nil {
		return nil, err
	}
	return New(client), nil
}

// New 使用已有客户端创建存储
func New(client *mongodb.Client) *Store {
	return &Store{
		client: client,
		users:  NewUserRepo(client),
		novels: NewNovelRepo(client),
		likes:  NewLikeRepo(client),
	}
}

func (s *Store) Users() repository.UserRepository   { return s.users }
func (s *Store) Novels() repository.NovelRepository { return s.novels }
func (s *Store) Likes() repository.LikeRepository   { return s.likes }

// Migrate 创建索引
func (s *Store) Migrate(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, s.client.Database())
}

// Ping 检查连接
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close 断开连接
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}

// translate 将驱动错误转换为仓库错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
