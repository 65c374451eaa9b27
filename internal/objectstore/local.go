package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore 本地磁盘存储，由 HTTP 静态目录对外提供
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore 创建本地存储
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Dir 返回存储根目录
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put 写入文件
func (s *LocalStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + key, nil
}

// Delete 删除文件，不存在时忽略
func (s *LocalStore) Delete(_ context.Context, key string) error {
	key = cleanKey(key)
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
