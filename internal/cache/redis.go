package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisHost   = "127.0.0.1"
	defaultRedisPort   = 6379
	defaultRedisPrefix = "eb"
	pingTimeout        = 2 * time.Second
)

var (
	redisClient *redis.Client
	redisPrefix = defaultRedisPrefix
)

// InitRedis 初始化 Redis 客户端，未启用时所有读写都是空操作
// 连通性失败只返回错误，客户端仍保留，调用方决定是否降级
func InitRedis(cfg *config.RedisConfig) error {
	_ = Close()
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := cfg.Port
	if port <= 0 {
		port = defaultRedisPort
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = defaultRedisPrefix
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis %s failed: %w", redisClient.Options().Addr, err)
	}
	return nil
}

// Close 关闭 Redis 客户端
func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return redisClient != nil
}

// Client 获取 Redis 客户端，限流中间件共用
func Client() *redis.Client {
	return redisClient
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	val, err := redisClient.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Del(ctx, buildKey(key)).Err()
}

// Remember 读穿缓存：命中直接返回，未命中调用 load 并回写
// 缓存读写失败只记日志，不影响 load 的结果
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err == nil && hit {
		return cached, nil
	}
	if err != nil {
		logger.Warnw("cache_get_failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := SetJSON(ctx, key, value, ttl); err != nil {
		logger.Warnw("cache_set_failed", "key", key, "error", err)
	}
	return value, nil
}

// NamespaceVersion 读取命名空间版本号，未启用或未写入时为 0
func NamespaceVersion(ctx context.Context, namespace string) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	version, err := redisClient.Get(ctx, buildKey(versionKey(namespace))).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// BumpNamespace 使命名空间下的缓存整体失效
func BumpNamespace(ctx context.Context, namespace string) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Incr(ctx, buildKey(versionKey(namespace))).Err()
}

// VersionedKey 组合带版本号的缓存 key
func VersionedKey(namespace string, version int64, parts ...string) string {
	segments := append([]string{namespace, fmt.Sprintf("v%d", version)}, parts...)
	return strings.Join(segments, ":")
}

func versionKey(namespace string) string {
	return fmt.Sprintf("%s:version", strings.TrimSpace(namespace))
}

func buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return redisPrefix
	}
	return fmt.Sprintf("%s:%s", redisPrefix, trimmed)
}
