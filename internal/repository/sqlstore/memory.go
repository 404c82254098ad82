package sqlstore

import (
	"context"
	"fmt"
	"sync/atomic"

	"novelhub/internal/config"
)

var memorySeq atomic.Int64

// OpenInMemory 打开一个独立的内存 SQLite 库并建表
// 每次调用得到不同的库，Close 后数据即丢失；用于测试和本地演示
func OpenInMemory() (*Store, error) {
	name := fmt.Sprintf("novelhub_mem_%d", memorySeq.Add(1))
	st, err := Open(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		LogLevel: "silent",
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(context.Background()); err != nil {
		_ = st.Close(context.Background())
		return nil, err
	}
	return st, nil
}
