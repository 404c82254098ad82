package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"novelhub/internal/model/auth"
)

// UserRepo 用户仓库
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建用户仓库
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create 创建用户
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// FindByUID 根据 uid 查询用户
func (r *UserRepo) FindByUID(ctx context.Context, uid int64) (*auth.User, error) {
	var user auth.User
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).Take(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername 根据用户名查询用户
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	var user auth.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUIDs 批量查询用户
func (r *UserRepo) FindByUIDs(ctx context.Context, uids []int64) (map[int64]*auth.User, error) {
	result := make(map[int64]*auth.User, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	var users []*auth.User
	if err := r.db.WithContext(ctx).Where("uid IN ?", uids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	for _, u := range users {
		result[u.UID] = u
	}
	return result, nil
}
