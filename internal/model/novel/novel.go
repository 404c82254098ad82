package novel

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Novel 小说实体
// UID 单调递增，列表中按 UID 倒序即为按发布时间倒序
type Novel struct {
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement" bson:"_id" json:"uid"`
	UserUID   int64     `gorm:"column:user_uid;not null;index:idx_novels_user_uid" bson:"user_uid" json:"user_uid"`
	Title     string    `gorm:"column:title;size:255;not null" bson:"title" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" bson:"content" json:"content"`
	Thumbnail string    `gorm:"column:thumbnail;size:512" bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Category  string    `gorm:"column:category;size:64;not null;index:idx_novels_category" bson:"category" json:"category"`
	Views     int64     `gorm:"column:views;not null;default:0;index:idx_novels_views" bson:"views" json:"views"`
	CreatedAt time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
}

// TableName gorm 表名
func (Novel) TableName() string { return "novels" }

// Collection 返回集合名称
func (n *Novel) Collection() string { return "novels" }

// EnsureIndexes 创建和维护索引
func (n *Novel) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(n.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_uid", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_user_uid"),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
		{
			Keys:    bson.D{{Key: "views", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_popular"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
