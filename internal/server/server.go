package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"novelhub/internal/config"
	"novelhub/internal/handler"
	authHandler "novelhub/internal/handler/auth"
	imageHandler "novelhub/internal/handler/image"
	novelHandler "novelhub/internal/handler/novel"
	userHandler "novelhub/internal/handler/user"
	"novelhub/internal/pkg/cache"
	"novelhub/internal/pkg/jwt"
	"novelhub/internal/pkg/storage"
	"novelhub/internal/pkg/storagefactory"
	"novelhub/internal/repository"
	"novelhub/internal/repository/storefactory"
	"novelhub/internal/server/middleware"
	"novelhub/internal/service"
	novelService "novelhub/internal/service/novel"
)

// DefaultRequestTimeout 未配置 server.request_timeout 时的请求超时
const DefaultRequestTimeout = 10 * time.Second

// 仅用于 debug/test 模式，release 模式由 Config.Validate 强制配置密钥
const devJWTSecret = "novelhub-dev-secret-change-me"

// Deps 服务器依赖，redis 和 storage 可以为空
type Deps struct {
	Store   repository.Store
	Redis   *cache.RedisCache
	Storage storage.Storage
}

// Server HTTP 服务器
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	store   repository.Store
	redis   *cache.RedisCache
	storage storage.Storage
}

// New 按配置创建存储、Redis 和文件存储，然后创建服务器
func New(cfg *config.Config) (*Server, error) {
	store, err := storefactory.NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("store ready")

	// Redis (可选)
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	// 文件存储 (可选)
	st, err := storagefactory.NewStorage(&cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("failed to init storage, image endpoints disabled")
		st = nil
	}

	return NewWithDeps(cfg, Deps{Store: store, Redis: redisCache, Storage: st}), nil
}

// NewWithDeps 使用已创建的依赖创建服务器
func NewWithDeps(cfg *config.Config, deps Deps) *Server {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:     cfg,
		engine:  gin.New(),
		store:   deps.Store,
		redis:   deps.Redis,
		storage: deps.Storage,
	}
	srv.setupRoutes()
	return srv
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	requestTimeout := s.cfg.Server.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}

	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())
	s.engine.Use(middleware.Timeout(requestTimeout))

	// 健康检查
	healthHandler := handler.NewHealthHandler(s.store)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = devJWTSecret
		log.Warn().Msg("JWT secret not configured, using development default")
	}

	// Service
	authSvc := service.NewAuthService(s.store.Users(), jwt.NewJWT(jwtSecret))
	userSvc := service.NewUserService(s.store, s.redis, s.cfg.Redis.ProfileTTL)
	novelSvc := novelService.NewNovelService(s.store, userSvc)

	// Handler
	authHdl := authHandler.NewHandler(authSvc, userSvc)
	userHdl := userHandler.NewHandler(userSvc, novelSvc)
	novelHdl := novelHandler.NewHandler(novelSvc)

	requireAuth := middleware.Auth(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)

		users := v1.Group("/users")
		{
			users.GET("/me", requireAuth, authHdl.GetMe)
			users.GET("/:uid", userHdl.GetProfile)
			users.GET("/:uid/novels", optionalAuth, userHdl.ListNovels)
		}

		novels := v1.Group("/novels")
		{
			novels.GET("", optionalAuth, novelHdl.ListNovels)
			novels.GET("/category", optionalAuth, novelHdl.ListByCategory)
			novels.GET("/search", optionalAuth, novelHdl.SearchNovels)
			novels.GET("/:id", optionalAuth, novelHdl.GetNovel)
			novels.POST("", requireAuth, s.rateLimit("create_novel"), novelHdl.CreateNovel)
			novels.DELETE("/:id", requireAuth, novelHdl.DeleteNovel)
			novels.POST("/:id/like", requireAuth, s.rateLimit("like"), novelHdl.ToggleLike)
		}

		if s.storage != nil {
			imageSvc := service.NewImageService(s.storage, s.cfg.Storage.MaxUploadBytes)
			imageHdl := imageHandler.NewHandler(imageSvc)

			images := v1.Group("/images", requireAuth)
			{
				images.POST("", s.rateLimit("upload_image"), imageHdl.UploadImage)
				images.DELETE("/*key", imageHdl.DeleteImage)
			}
		} else {
			log.Warn().Msg("storage not configured, image endpoints disabled")
		}
	}
}

// rateLimit 写接口限流，未启用或没有 Redis 时不做任何事
func (s *Server) rateLimit(action string) gin.HandlerFunc {
	rl := s.cfg.Redis.RateLimit
	if s.redis == nil || !rl.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(s.redis, action, rl.Limit, rl.Window)
}

// Run 启动服务器，ctx 取消后优雅关闭并释放存储连接
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		s.Close(shutdownCtx)
		return err
	case err := <-errCh:
		s.Close(context.Background())
		return err
	}
}

// Close 关闭存储和 Redis 连接
func (s *Server) Close(ctx context.Context) {
	if err := s.store.Close(ctx); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close Redis connection")
		}
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
