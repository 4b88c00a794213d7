package session

import (
	"context"
	"fmt"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/common/middleware"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_token:"

// Store 登出 token 黑名单（Redis）。
// 黑名单属于尽力而为的次级状态：Redis 不可用时经由熔断器降级，
// 校验按未吊销放行并记录日志，不影响主链路。
type Store struct {
	rdb     *redis.Client
	breaker *middleware.CircuitBreaker
	log     logger.Logger
}

// NewRedisClient 根据配置创建 Redis 客户端。
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewStore(rdb *redis.Client, log logger.Logger) *Store {
	return &Store{
		rdb:     rdb,
		breaker: middleware.NewCircuitBreaker("session-redis", 5, 30*time.Second),
		log:     log,
	}
}

// Revoke 将 token 写入黑名单，ttl 对齐 token 剩余有效期。
func (s *Store) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if s == nil || s.rdb == nil || token == "" {
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	err := s.breaker.Call(ctx, func() error {
		return s.rdb.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err()
	})
	if err != nil && s.log != nil {
		s.log.Warnf("failed to revoke token: %v", err)
	}
	return err
}

// IsRevoked 查询 token 是否已吊销；Redis 异常时放行（fail-open）。
func (s *Store) IsRevoked(ctx context.Context, token string) bool {
	if s == nil || s.rdb == nil || token == "" {
		return false
	}
	revoked := false
	err := s.breaker.Call(ctx, func() error {
		n, err := s.rdb.Exists(ctx, revokedKeyPrefix+token).Result()
		if err != nil {
			return err
		}
		revoked = n > 0
		return nil
	})
	if err != nil {
		if s.log != nil {
			s.log.Warnf("token revocation check degraded: %v", err)
		}
		return false
	}
	return revoked
}
