package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/mongodb"
	"novelhub/internal/repository"
)

// LikeRepo 点赞仓库
type LikeRepo struct {
	client *mongodb.Client
	coll   *mongo.Collection
	novels *mongo.Collection
}

// NewLikeRepo 创建点赞仓库
func NewLikeRepo(client *mongodb.Client) *LikeRepo {
	return &LikeRepo{
		client: client,
		coll:   client.Collection((&novel.Like{}).Collection()),
		novels: client.Collection((&novel.Novel{}).Collection()),
	}
}

// Toggle 切换点赞状态
// 唯一索引 uniq_user_novel 保证同一对 (user, novel) 至多一条；并发插入冲突时整体重试
func (r *LikeRepo) Toggle(ctx context.Context, userUID, novelUID int64) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < repository.MaxToggleAttempts; attempt++ {
		liked, err := r.toggleOnce(ctx, userUID, novelUID)
		if err == nil {
			return liked, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return false, err
		}
		lastErr = err
	}
	return false, lastErr
}

func (r *LikeRepo) toggleOnce(ctx context.Context, userUID, novelUID int64) (bool, error) {
	var liked bool
	err := r.client.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		exists, err := r.novels.CountDocuments(sc, bson.M{"_id": novelUID}, options.Count().SetLimit(1))
		if err != nil {
			return err
		}
		if exists == 0 {
			return repository.ErrNotFound
		}

		pair := bson.M{"user_uid": userUID, "novel_uid": novelUID}
		res, err := r.coll.DeleteOne(sc, pair)
		if err != nil {
			return err
		}
		if res.DeletedCount > 0 {
			liked = false
			return nil
		}

		like := &novel.Like{UserUID: userUID, NovelUID: novelUID, CreatedAt: time.Now()}
		if _, err := r.coll.InsertOne(sc, like); err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, translate(err)
	}
	return liked, nil
}

// Exists 是否已点赞
func (r *LikeRepo) Exists(ctx context.Context, userUID, novelUID int64) (bool, error) {
	count, err := r.coll.CountDocuments(ctx,
		bson.M{"user_uid": userUID, "novel_uid": novelUID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// CountByNovel 单个小说的点赞数
func (r *LikeRepo) CountByNovel(ctx context.Context, novelUID int64) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"novel_uid": novelUID})
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// CountByNovels 批量统计点赞数
func (r *LikeRepo) CountByNovels(ctx context.Context, novelUIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(novelUIDs))
	if len(novelUIDs) == 0 {
		return result, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"novel_uid": bson.M{"$in": novelUIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$novel_uid", "total": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		NovelUID int64 `bson:"_id"`
		Total    int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.NovelUID] = row.Total
	}
	return result, nil
}

// LikedNovels 返回 novelUIDs 中被该用户点赞过的集合
func (r *LikeRepo) LikedNovels(ctx context.Context, userUID int64, novelUIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(novelUIDs))
	if len(novelUIDs) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"novel_uid": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"user_uid": userUID, "novel_uid": bson.M{"$in": novelUIDs}}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	var likes []novel.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.NovelUID] = true
	}
	return result, nil
}

// CountByUser 用户点赞过的小说数
func (r *LikeRepo) CountByUser(ctx context.Context, userUID int64) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"user_uid": userUID})
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
