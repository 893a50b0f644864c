package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/i18n"
	"github.com/elitebuy/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int // 超限后封禁时长，0 表示沿用窗口剩余时间
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// retryAfter 计算提示给用户的等待秒数
func (r RateLimitRule) retryAfter(ttlSeconds int64) int {
	wait := int(ttlSeconds)
	if wait < 1 {
		wait = r.WindowSeconds
		if r.BlockSeconds > 0 {
			wait = r.BlockSeconds
		}
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

// authRateLimitRules 登录按邮箱+IP 计数并在超限后封禁，注册只按窗口计数
func authRateLimitRules(cfg config.LoginRateLimitConfig, redisPrefix string) (login RateLimitRule, register RateLimitRule) {
	login = RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	register = RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
	}
	return login, register
}

// rateCounter 对 key 计数一次，返回当前次数与剩余秒数
type rateCounter func(ctx context.Context, key string, rule RateLimitRule) (count int64, ttlSeconds int64, err error)

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local limit = tonumber(ARGV[2])
local block = tonumber(ARGV[3])
if block > 0 and current == limit + 1 then
	redis.call("EXPIRE", KEYS[1], block)
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

func redisRateCounter(client *redis.Client) rateCounter {
	return func(ctx context.Context, key string, rule RateLimitRule) (int64, int64, error) {
		result, err := rateLimitScript.Run(ctx, client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
		if err != nil {
			return 0, 0, err
		}
		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			return 0, 0, fmt.Errorf("unexpected rate limit reply: %v", result)
		}
		count, ok := toInt64(values[0])
		if !ok {
			return 0, 0, fmt.Errorf("unexpected rate limit count: %v", values[0])
		}
		ttl, _ := toInt64(values[1])
		return count, ttl, nil
	}
}

// RateLimitMiddleware Redis 频率限制中间件，未配置 Redis 时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if client == nil {
		return rateLimitMiddleware(nil, rule, keyFunc)
	}
	return rateLimitMiddleware(redisRateCounter(client), rule, keyFunc)
}

func rateLimitMiddleware(counter rateCounter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || !rule.enabled() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		locale := i18n.ResolveLocale(c)
		count, ttl, err := counter(c.Request.Context(), key, rule)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(locale, "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if count > int64(rule.MaxRequests) {
			wait := rule.retryAfter(ttl)
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			response.TooManyRequests(c, i18n.Sprintf(locale, msgKey, wait), wait)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	var payload map[string]interface{}
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	text, _ := payload[field].(string)
	return strings.TrimSpace(text)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
