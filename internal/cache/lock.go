package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout 等待分布式锁超时
var ErrLockTimeout = errors.New("cache lock timeout")

const lockRetryInterval = 20 * time.Millisecond

// 仅当值仍为本次加锁令牌时删除，避免释放他人在过期后重新获得的锁
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireLock 获取分布式锁，ttl 为持有上限，wait 为最长等待时间；
// 未启用缓存时直接返回空释放函数。
func AcquireLock(ctx context.Context, key string, ttl, wait time.Duration) (func(), error) {
	if !Enabled() {
		return func() {}, nil
	}
	fullKey := buildKey(key)
	token := uuid.NewString()
	deadline := time.Now().Add(wait)
	for {
		ok, err := redisClient.SetNX(ctx, fullKey, token, ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
	client := redisClient
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseLockScript.Run(releaseCtx, client, []string{fullKey}, token).Err()
	}, nil
}
