package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"novelhub/internal/model/auth"
	"novelhub/internal/model/novel"
)

// EnsureIndexes 创建所有模型的索引，应用启动或执行 migrate 时调用
// counters 集合只按 _id 访问，不需要额外索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return EnsureAllIndexes(ctx, db,
		&auth.User{},
		&novel.Novel{},
		&novel.Like{},
	)
}
