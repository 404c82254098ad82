package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"novelhub/internal/model/auth"
	"novelhub/internal/model/novel"
	"novelhub/internal/pkg/apperr"
	"novelhub/internal/pkg/cache"
	"novelhub/internal/repository"
)

// DefaultProfileTTL 用户统计缓存默认时间
const DefaultProfileTTL = time.Minute

// UserService 用户资料服务
// cache 为 nil 时每次都从存储计算统计
type UserService struct {
	store repository.Store
	cache *cache.RedisCache
	ttl   time.Duration
}

// NewUserService 创建用户资料服务
func NewUserService(store repository.Store, c *cache.RedisCache, ttl time.Duration) *UserService {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &UserService{store: store, cache: c, ttl: ttl}
}

// Profile 用户资料与统计
func (s *UserService) Profile(ctx context.Context, uid int64) (*auth.Profile, error) {
	user, err := s.store.Users().FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user %d", uid)
		}
		log.Error().Err(err).Int64("uid", uid).Msg("failed to find user")
		return nil, apperr.Store(err)
	}

	stats, err := s.Stats(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &auth.Profile{User: user, Stats: *stats}, nil
}

// Stats 用户统计，优先读缓存
func (s *UserService) Stats(ctx context.Context, uid int64) (*auth.UserStats, error) {
	key := cache.UserStatsKey(uid)
	if s.cache != nil {
		var cached auth.UserStats
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("failed to read stats cache")
		}
	}

	stats, err := s.computeStats(ctx, uid)
	if err != nil {
		log.Error().Err(err).Int64("uid", uid).Msg("failed to compute user stats")
		return nil, apperr.Store(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to write stats cache")
		}
	}
	return stats, nil
}

func (s *UserService) computeStats(ctx context.Context, uid int64) (*auth.UserStats, error) {
	likes, err := s.store.Likes().CountByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	novels, err := s.store.Novels().Count(ctx, novel.Filter{OwnerUID: uid})
	if err != nil {
		return nil, err
	}
	views, err := s.store.Novels().SumViews(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &auth.UserStats{TotalLikes: likes, TotalNovels: novels, TotalViews: views}, nil
}

// InvalidateStats 清除用户统计缓存，失败只记录日志
func (s *UserService) InvalidateStats(ctx context.Context, uids ...int64) {
	if s.cache == nil || len(uids) == 0 {
		return
	}
	keys := make([]string, 0, len(uids))
	for _, uid := range uids {
		if uid > 0 {
			keys = append(keys, cache.UserStatsKey(uid))
		}
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate stats cache")
	}
}
