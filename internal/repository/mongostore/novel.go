package mongostore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/mongodb"
	"novelhub/internal/repository"
)

// NovelRepo 小说仓库
type NovelRepo struct {
	client *mongodb.Client
	coll   *mongo.Collection
	likes  *mongo.Collection
}

// NewNovelRepo 创建小说仓库
func NewNovelRepo(client *mongodb.Client) *NovelRepo {
	return &NovelRepo{
		client: client,
		coll:   client.Collection((&novel.Novel{}).Collection()),
		likes:  client.Collection((&novel.Like{}).Collection()),
	}
}

// Create 创建小说
func (r *NovelRepo) Create(ctx context.Context, n *novel.Novel) error {
	uid, err := mongodb.NextSequence(ctx, r.client.Database(), n.Collection())
	if err != nil {
		return err
	}
	n.UID = uid
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		n.UID = 0
		return translate(err)
	}
	return nil
}

// FindByUID 根据 UID 查询
func (r *NovelRepo) FindByUID(ctx context.Context, uid int64) (*novel.Novel, error) {
	var n novel.Novel
	if err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&n); err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// IncrementViews 浏览量加一，返回更新后的文档
func (r *NovelRepo) IncrementViews(ctx context.Context, uid int64) (*novel.Novel, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n novel.Novel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": uid},
		bson.M{"$inc": bson.M{"views": int64(1)}},
		opts,
	).Decode(&n)
	if err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// List 分页列表
func (r *NovelRepo) List(ctx context.Context, filter novel.Filter, order novel.Order, offset, limit int64) ([]*novel.Novel, error) {
	query, err := r.query(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(sortOf(order)).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	novels := make([]*novel.Novel, 0, limit)
	for cursor.Next(ctx) {
		var n novel.Novel
		if err := cursor.Decode(&n); err != nil {
			return nil, err
		}
		novels = append(novels, &n)
	}
	return novels, cursor.Err()
}

// Count 统计满足条件的数量
func (r *NovelRepo) Count(ctx context.Context, filter novel.Filter) (int64, error) {
	query, err := r.query(ctx, filter)
	if err != nil {
		return 0, err
	}
	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return 0, translate(err)
	}
	return total, nil
}

// SumViews 作者所有作品的浏览量之和
func (r *NovelRepo) SumViews(ctx context.Context, ownerUID int64) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_uid": ownerUID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$views"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, translate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// Delete 事务内删除小说及其点赞
func (r *NovelRepo) Delete(ctx context.Context, uid int64) error {
	err := r.client.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.likes.DeleteMany(sc, bson.M{"novel_uid": uid}); err != nil {
			return err
		}
		res, err := r.coll.DeleteOne(sc, bson.M{"_id": uid})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// query 将过滤条件转换为查询文档
func (r *NovelRepo) query(ctx context.Context, filter novel.Filter) (bson.M, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.TitleContains != "" {
		query["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.TitleContains), Options: "i"}
	}
	if filter.OwnerUID > 0 {
		query["user_uid"] = filter.OwnerUID
	}
	if filter.LikedByUID > 0 {
		liked, err := r.likes.Distinct(ctx, "novel_uid", bson.M{"user_uid": filter.LikedByUID})
		if err != nil {
			return nil, translate(err)
		}
		query["_id"] = bson.M{"$in": liked}
	}
	return query, nil
}

func sortOf(order novel.Order) bson.D {
	switch order {
	case novel.OrderLatest:
		return bson.D{{Key: "_id", Value: -1}}
	case novel.OrderPopular:
		return bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: -1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}
