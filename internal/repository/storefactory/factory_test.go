package storefactory

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"novelhub/internal/config"
	"novelhub/internal/repository/sqlstore"
)

func TestNewStore(t *testing.T) {
	Convey("NewStore", t, func() {
		ctx := context.Background()

		Convey("sqlite 文件库", func() {
			cfg := &config.Config{Database: config.DatabaseConfig{
				Driver:   config.DriverSQLite,
				DSN:      filepath.Join(t.TempDir(), "novelhub.db"),
				LogLevel: "silent",
			}}
			st, err := NewStore(cfg)
			So(err, ShouldBeNil)
			defer st.Close(ctx)

			_, ok := st.(*sqlstore.Store)
			So(ok, ShouldBeTrue)
			So(st.Migrate(ctx), ShouldBeNil)
			So(st.Ping(ctx), ShouldBeNil)
		})

		Convey("不支持的驱动", func() {
			_, err := NewStore(&config.Config{Database: config.DatabaseConfig{Driver: "postgres"}})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "postgres")
		})
	})
}
