package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"novelhub/internal/model/auth"
	"novelhub/internal/pkg/mongodb"
)

// UserRepo 用户仓库
type UserRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewUserRepo 创建用户仓库
func NewUserRepo(client *mongodb.Client) *UserRepo {
	return &UserRepo{
		db:   client.Database(),
		coll: client.Collection((&auth.User{}).Collection()),
	}
}

// Create 创建用户
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	uid, err := mongodb.NextSequence(ctx, r.db, user.Collection())
	if err != nil {
		return err
	}
	user.UID = uid
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		user.UID = 0
		return translate(err)
	}
	return nil
}

// FindByUID 根据 UID 查询
func (r *UserRepo) FindByUID(ctx context.Context, uid int64) (*auth.User, error) {
	var user auth.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": uid}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername 根据用户名查询
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	var user auth.User
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUIDs 批量查询
func (r *UserRepo) FindByUIDs(ctx context.Context, uids []int64) (map[int64]*auth.User, error) {
	result := make(map[int64]*auth.User, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": uids}})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user auth.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		result[user.UID] = &user
	}
	return result, cursor.Err()
}
