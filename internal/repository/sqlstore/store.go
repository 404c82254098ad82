// Package sqlstore 基于 gorm 的关系型存储实现（MySQL / SQLite）
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"novelhub/internal/config"
	"novelhub/internal/model/auth"
	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/logger"
	"novelhub/internal/repository"
)

// Store gorm 存储
type Store struct {
	db     *gorm.DB
	users  *UserRepo
	novels *NovelRepo
	likes  *LikeRepo
}

var _ repository.Store = (*Store)(nil)

// Open 按配置打开数据库连接
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.NewGormLogger(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite 单连接：写操作串行化，内存库也不会因连接回收而丢失
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 100))
		sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
		lifetime := cfg.ConnMaxLifetime
		if lifetime == 0 {
			lifetime = time.Hour
		}
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	return New(db), nil
}

// New 使用已有的 gorm 连接创建存储
func New(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		users:  NewUserRepo(db),
		novels: NewNovelRepo(db),
		likes:  NewLikeRepo(db),
	}
}

func (s *Store) Users() repository.UserRepository   { return s.users }
func (s *Store) Novels() repository.NovelRepository { return s.novels }
func (s *Store) Likes() repository.LikeRepository   { return s.likes }

// DB 获取原始连接
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate 自动建表
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&auth.User{}, &novel.Novel{}, &novel.Like{})
}

// Ping 检查连接
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭连接
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate 将 gorm 错误转换为仓库错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
