package novel

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Like 点赞关系，(UserUID, NovelUID) 唯一
type Like struct {
	UserUID   int64     `gorm:"column:user_uid;primaryKey;autoIncrement:false" bson:"user_uid" json:"user_uid"`
	NovelUID  int64     `gorm:"column:novel_uid;primaryKey;autoIncrement:false;index:idx_novel_likes_novel_uid" bson:"novel_uid" json:"novel_uid"`
	CreatedAt time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
}

// TableName gorm 表名
func (Like) TableName() string { return "novel_likes" }

// Collection 返回集合名称
func (l *Like) Collection() string { return "novel_likes" }

// EnsureIndexes 创建和维护索引
func (l *Like) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(l.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_uid", Value: 1}, {Key: "novel_uid", Value: 1}},
			Options: options.Index().SetName("uniq_user_novel").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "novel_uid", Value: 1}},
			Options: options.Index().SetName("idx_novel_uid"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// LikeState 点赞切换结果
type LikeState struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
