// Package storefactory 按配置创建存储实现
package storefactory

import (
	"fmt"

	"novelhub/internal/config"
	"novelhub/internal/repository"
	"novelhub/internal/repository/mongostore"
	"novelhub/internal/repository/sqlstore"
)

// NewStore 根据 database.driver 创建存储
// mongo 使用 cfg.Mongo，sqlite / mysql 使用 cfg.Database.DSN
func NewStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite, config.DriverMySQL:
		return sqlstore.Open(&cfg.Database)
	case config.DriverMongo:
		return mongostore.Open(&cfg.Mongo)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
