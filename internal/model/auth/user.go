package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User 用户实体
// UID 为内部数字ID（自增），Username 为登录名（唯一）
type User struct {
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement" bson:"_id" json:"uid"`
	Username  string    `gorm:"column:username;size:64;uniqueIndex;not null" bson:"username" json:"username"`
	Nickname  string    `gorm:"column:nickname;size:64;not null" bson:"nickname" json:"nickname"`
	Password  string    `gorm:"column:password;size:255;not null" bson:"password" json:"-"` // 密码（加密存储，不返回）
	CreatedAt time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
}

// TableName gorm 表名
func (User) TableName() string { return "users" }

// Collection 返回集合名称
func (u *User) Collection() string { return "users" }

// EnsureIndexes 创建和维护索引
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username").SetUnique(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// UserStats 用户统计
type UserStats struct {
	TotalLikes  int64 `json:"total_likes"`  // 点赞过的作品数
	TotalNovels int64 `json:"total_novels"` // 发布的作品数
	TotalViews  int64 `json:"total_views"`  // 作品累计浏览量
}

// Profile 用户资料与统计
type Profile struct {
	User  *User     `json:"user"`
	Stats UserStats `json:"stats"`
}
