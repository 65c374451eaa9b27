package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/autoparts-enquiry/internal/config"
)

const (
	// DriverLocal 本地磁盘
	DriverLocal = "local"
	// DriverS3 S3 兼容对象存储（含 Cloudflare R2）
	DriverS3 = "s3"
)

// Store 上传文件存储接口
type Store interface {
	// Put 写入对象并返回可访问地址
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// New 根据配置创建存储
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverLocal:
		return NewLocalStore(cfg.LocalDir, "/uploads"), nil
	case DriverS3:
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

func cleanKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	parts := strings.Split(key, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, "/")
}
