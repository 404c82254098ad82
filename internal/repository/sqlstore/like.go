package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"novelhub/internal/model/novel"
	"novelhub/internal/repository"
)

// LikeRepo 点赞仓库
type LikeRepo struct {
	db *gorm.DB
}

// NewLikeRepo 创建点赞仓库
func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db: db}
}

// MySQL 中可整体重试的错误码
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// Toggle 切换点赞状态
// 事务内先删后插：删到记录即取消点赞，否则插入
// 并发插入撞上主键冲突，或 InnoDB 报死锁、锁等待超时时整体重试
func (r *LikeRepo) Toggle(ctx context.Context, userUID, novelUID int64) (bool, error) {
	var lastErr error
	for attempt := 0; attempt < repository.MaxToggleAttempts; attempt++ {
		liked, err := r.toggleOnce(ctx, userUID, novelUID)
		if err == nil {
			return liked, nil
		}
		if !retryable(err) {
			return false, err
		}
		lastErr = err
	}
	return false, lastErr
}

func (r *LikeRepo) toggleOnce(ctx context.Context, userUID, novelUID int64) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// MySQL 下锁住小说行，同一小说上的切换串行执行；SQLite 只有一个连接，不需要行锁
		q := tx.Model(&novel.Novel{}).Where("uid = ?", novelUID).Limit(1)
		if tx.Dialector.Name() == "mysql" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var found []int64
		if err := q.Pluck("uid", &found).Error; err != nil {
			return err
		}
		if len(found) == 0 {
			return repository.ErrNotFound
		}

		res := tx.Where("user_uid = ? AND novel_uid = ?", userUID, novelUID).Delete(&novel.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &novel.Like{UserUID: userUID, NovelUID: novelUID, CreatedAt: time.Now()}
		if err := tx.Create(like).Error; err != nil {
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

// retryable 切换失败后是否可以整体重试
func retryable(err error) bool {
	if errors.Is(err, repository.ErrDuplicate) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout
	}
	return false
}

// Exists 是否已点赞
func (r *LikeRepo) Exists(ctx context.Context, userUID, novelUID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&novel.Like{}).
		Where("user_uid = ? AND novel_uid = ?", userUID, novelUID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// CountByNovel 单个小说的点赞数
func (r *LikeRepo) CountByNovel(ctx context.Context, novelUID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&novel.Like{}).Where("novel_uid = ?", novelUID).Count(&count).Error; err != nil {
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

	var rows []struct {
		NovelUID int64
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&novel.Like{}).
		Select("novel_uid, COUNT(*) AS total").
		Where("novel_uid IN ?", novelUIDs).
		Group("novel_uid").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
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

	var liked []int64
	err := r.db.WithContext(ctx).
		Model(&novel.Like{}).
		Where("user_uid = ? AND novel_uid IN ?", userUID, novelUIDs).
		Pluck("novel_uid", &liked).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, uid := range liked {
		result[uid] = true
	}
	return result, nil
}

// CountByUser 用户点赞过的小说数
func (r *LikeRepo) CountByUser(ctx context.Context, userUID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&novel.Like{}).Where("user_uid = ?", userUID).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
