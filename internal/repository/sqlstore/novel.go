package sqlstore

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"novelhub/internal/model/novel"
	"novelhub/internal/repository"
)

// likeEscaper 转义 LIKE 通配符，配合 ESCAPE '!' 使用（MySQL 与 SQLite 通用）
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// NovelRepo 小说仓库
type NovelRepo struct {
	db *gorm.DB
}

// NewNovelRepo 创建小说仓库
func NewNovelRepo(db *gorm.DB) *NovelRepo {
	return &NovelRepo{db: db}
}

// Create 创建小说
func (r *NovelRepo) Create(ctx context.Context, n *novel.Novel) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return translate(r.db.WithContext(ctx).Create(n).Error)
}

// FindByUID 根据 uid 查询
func (r *NovelRepo) FindByUID(ctx context.Context, uid int64) (*novel.Novel, error) {
	var n novel.Novel
	if err := r.db.WithContext(ctx).Where("uid = ?", uid).Take(&n).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// IncrementViews 浏览量加一并在同一事务中读回
// UPDATE 持有行锁直到提交，读回的值一定包含本次自增
func (r *NovelRepo) IncrementViews(ctx context.Context, uid int64) (*novel.Novel, error) {
	var n novel.Novel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&novel.Novel{}).
			Where("uid = ?", uid).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return tx.Where("uid = ?", uid).Take(&n).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// List 按条件分页查询
func (r *NovelRepo) List(ctx context.Context, filter novel.Filter, order novel.Order, offset, limit int64) ([]*novel.Novel, error) {
	q := r.scope(ctx, filter)
	switch order {
	case novel.OrderLatest:
		q = q.Order("uid DESC")
	case novel.OrderPopular:
		q = q.Order("views DESC").Order("uid DESC")
	default:
		q = q.Order("uid ASC")
	}

	novels := make([]*novel.Novel, 0, limit)
	if err := q.Offset(int(offset)).Limit(int(limit)).Find(&novels).Error; err != nil {
		return nil, translate(err)
	}
	return novels, nil
}

// Count 统计符合条件的数量
func (r *NovelRepo) Count(ctx context.Context, filter novel.Filter) (int64, error) {
	var total int64
	if err := r.scope(ctx, filter).Count(&total).Error; err != nil {
		return 0, translate(err)
	}
	return total, nil
}

// SumViews 作者作品浏览量之和
func (r *NovelRepo) SumViews(ctx context.Context, ownerUID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&novel.Novel{}).
		Where("user_uid = ?", ownerUID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, translate(err)
	}
	return total, nil
}

// Delete 删除小说并级联删除点赞，二者在同一事务中
func (r *NovelRepo) Delete(ctx context.Context, uid int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("novel_uid = ?", uid).Delete(&novel.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("uid = ?", uid).Delete(&novel.Novel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	return translate(err)
}

// scope 构造带过滤条件的查询，每次调用返回新的查询
func (r *NovelRepo) scope(ctx context.Context, filter novel.Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&novel.Novel{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.TitleContains != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.TitleContains)) + "%"
		q = q.Where("LOWER(title) LIKE ? ESCAPE '!'", pattern)
	}
	if filter.OwnerUID != 0 {
		q = q.Where("user_uid = ?", filter.OwnerUID)
	}
	if filter.LikedByUID != 0 {
		liked := r.db.Model(&novel.Like{}).Select("novel_uid").Where("user_uid = ?", filter.LikedByUID)
		q = q.Where("uid IN (?)", liked)
	}
	return q
}
