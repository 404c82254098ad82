package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // 单个请求的存储调用超时
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// 支持的存储驱动
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
)

// DatabaseConfig 数据存储配置
// driver 为 mongo 时使用 MongoConfig，其余驱动使用 DSN
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`            // sqlite, mysql, mongo
	DSN             string        `mapstructure:"dsn"`               // 关系型数据库连接串
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最长存活时间
	LogLevel        string        `mapstructure:"log_level"`         // gorm 日志级别：silent, error, warn, info
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr       string          `mapstructure:"addr"`
	Password   string          `mapstructure:"password"`
	DB         int             `mapstructure:"db"`
	ProfileTTL time.Duration   `mapstructure:"profile_ttl"` // 用户统计缓存时间
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig 写接口限流配置（固定窗口）
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`  // 窗口内允许的请求数
	Window  time.Duration `mapstructure:"window"` // 窗口长度
}

// AuthConfig 认证配置
// Token 有效期固定为 12 小时，见 jwt.TokenTTL
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"` // JWT密钥
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type           string       `mapstructure:"type"`             // local, oss
	MaxUploadBytes int64        `mapstructure:"max_upload_bytes"` // 单个缩略图大小上限
	Local          *LocalConfig `mapstructure:"local,omitempty"`
	OSS            *OSSConfig   `mapstructure:"oss,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath string `mapstructure:"base_path"` // 基础路径
	BaseURL  string `mapstructure:"base_url"`  // 基础URL（用于生成访问URL）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for sql drivers")
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database are required for mongo driver")
		}
	default:
		return errors.New("invalid database driver, must be sqlite/mysql/mongo")
	}

	if c.Server.Mode == "release" && c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required in release mode")
	}

	if c.Redis.RateLimit.Enabled && (c.Redis.RateLimit.Limit <= 0 || c.Redis.RateLimit.Window <= 0) {
		return errors.New("redis.rate_limit requires positive limit and window")
	}

	return nil
}
