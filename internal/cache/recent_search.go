package cache

import (
	"context"
	"strings"
	"time"
)

const (
	// RecentSearchLimit 每个会话保留的最近搜索词数量
	RecentSearchLimit = 5
	recentSearchTTL   = 30 * 24 * time.Hour
)

func recentSearchKey(session string) string {
	return "search:recent:" + session
}

// PushRecentSearch 记录搜索词：去重后置顶，只保留最近 5 条
func PushRecentSearch(ctx context.Context, session, term string) error {
	term = strings.TrimSpace(term)
	if !Enabled() || session == "" || term == "" {
		return nil
	}
	key := buildKey(recentSearchKey(session))
	pipe := redisClient.TxPipeline()
	pipe.LRem(ctx, key, 0, term)
	pipe.LPush(ctx, key, term)
	pipe.LTrim(ctx, key, 0, RecentSearchLimit-1)
	pipe.Expire(ctx, key, recentSearchTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// RecentSearches 获取最近搜索词（最新在前）
func RecentSearches(ctx context.Context, session string) ([]string, error) {
	if !Enabled() || session == "" {
		return []string{}, nil
	}
	return redisClient.LRange(ctx, buildKey(recentSearchKey(session)), 0, RecentSearchLimit-1).Result()
}

// ClearRecentSearches 清空最近搜索词
func ClearRecentSearches(ctx context.Context, session string) error {
	if session == "" {
		return nil
	}
	return Del(ctx, recentSearchKey(session))
}
