package cart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage 询价车持久化接口（键值槽位）
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

const minMemorySweepInterval = time.Minute

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStorage 进程内存储，设置 ttl 后槽位在最后一次写入 ttl 之后过期
type MemoryStorage struct {
	mu        sync.Mutex
	values    map[string]memoryEntry
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStorage 创建不过期的内存存储
func NewMemoryStorage() *MemoryStorage {
	return NewMemoryStorageWithTTL(0)
}

// NewMemoryStorageWithTTL 创建带过期时间的内存存储，写入时顺带清理过期槽位
func NewMemoryStorageWithTTL(ttl time.Duration) *MemoryStorage {
	return &MemoryStorage{
		values: make(map[string]memoryEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get 读取槽位，过期槽位视为不存在
func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.values[key]
	if !ok {
		return "", false, nil
	}
	if m.expired(entry, m.now()) {
		delete(m.values, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set 写入槽位并续期
func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = now.Add(m.ttl)
	}
	m.values[key] = entry
	m.sweepLocked(now)
	return nil
}

// Len 当前保存的槽位数
func (m *MemoryStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

func (m *MemoryStorage) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}

// sweepLocked 调用方需持有锁，间隔不短于一分钟且不长于 ttl
func (m *MemoryStorage) sweepLocked(now time.Time) {
	if m.ttl <= 0 {
		return
	}
	interval := m.ttl
	if interval < minMemorySweepInterval {
		interval = minMemorySweepInterval
	}
	if now.Sub(m.lastSweep) < interval {
		return
	}
	m.lastSweep = now
	for key, entry := range m.values {
		if m.expired(entry, now) {
			delete(m.values, key)
		}
	}
}

// FileStorage 以目录下的 JSON 文件保存槽位
type FileStorage struct {
	dir string
}

// NewFileStorage 创建文件存储
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

var fileKeyReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, fileKeyReplacer.Replace(key)+".json")
}

// Get 读取槽位
func (f *FileStorage) Get(key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Set 先写同目录下的独立临时文件再原子替换，并发写入互不覆盖临时文件
func (f *FileStorage) Set(key, value string) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir failed: %w", err)
	}
	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create cart temp file failed: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

const redisOpTimeout = 2 * time.Second

// RedisStorage 按会话隔离的 Redis 槽位
type RedisStorage struct {
	client  *redis.Client
	prefix  string
	session string
	ttl     time.Duration
}

// NewRedisStorage 创建会话级 Redis 存储
func NewRedisStorage(client *redis.Client, prefix, session string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{
		client:  client,
		prefix:  strings.TrimSpace(prefix),
		session: session,
		ttl:     ttl,
	}
}

func (r *RedisStorage) key(key string) string {
	if r.prefix == "" {
		return "cart:" + r.session + ":" + key
	}
	return r.prefix + ":cart:" + r.session + ":" + key
}

// Get 读取槽位
func (r *RedisStorage) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set 写入槽位并续期
func (r *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return r.client.Set(ctx, r.key(key), value, r.ttl).Err()
}

// ScopedStorage 为槽位键加上作用域前缀，使多个会话共享同一底层存储
type ScopedStorage struct {
	inner Storage
	scope string
}

// NewScopedStorage 创建带作用域的存储
func NewScopedStorage(inner Storage, scope string) *ScopedStorage {
	return &ScopedStorage{inner: inner, scope: scope}
}

// Get 读取槽位
func (s *ScopedStorage) Get(key string) (string, bool, error) {
	return s.inner.Get(s.scope + ":" + key)
}

// Set 写入槽位
func (s *ScopedStorage) Set(key, value string) error {
	return s.inner.Set(s.scope+":"+key, value)
}
