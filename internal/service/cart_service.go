package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoparts-enquiry/internal/cache"
	"github.com/autoparts-enquiry/internal/cart"
	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/logger"
	"github.com/autoparts-enquiry/internal/repository"

	"github.com/shopspring/decimal"
)

// CartView 询价车展示数据
type CartView struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

const (
	cartLockTTL  = 10 * time.Second
	cartLockWait = 3 * time.Second
)

// CartService 会话询价车服务
// 同一会话的打开、修改、写回在会话锁内完成；启用 Redis 时另加分布式锁，覆盖多实例部署。
type CartService struct {
	productRepo repository.ProductRepository
	ttl         time.Duration
	locks       *cart.SessionLocks
	memory      *cart.MemoryStorage
	files       *cart.FileStorage
}

// NewCartService 创建询价车服务
func NewCartService(cfg config.CartConfig, productRepo repository.ProductRepository) *CartService {
	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	svc := &CartService{
		productRepo: productRepo,
		ttl:         ttl,
		locks:       cart.NewSessionLocks(),
		memory:      cart.NewMemoryStorageWithTTL(ttl),
	}
	if dir := strings.TrimSpace(cfg.FileDir); dir != "" {
		svc.files = cart.NewFileStorage(dir)
	}
	return svc
}

// Open 打开会话对应的询价车，优先 Redis，其次配置的落盘目录，最后进程内存
func (s *CartService) Open(session string) *cart.Store {
	session = strings.TrimSpace(session)
	if cache.Enabled() {
		return cart.New(cart.NewRedisStorage(cache.Client(), cache.Prefix(), session, s.ttl))
	}
	if s.files != nil {
		return cart.New(cart.NewScopedStorage(s.files, session))
	}
	return cart.New(cart.NewScopedStorage(s.memory, session))
}

// View 获取询价车
func (s *CartService) View(session string) CartView {
	return buildCartView(s.Open(session))
}

// WithCart 持有会话锁打开询价车并执行 fn，返回执行后的视图
func (s *CartService) WithCart(session string, fn func(store *cart.Store) error) (CartView, error) {
	session = strings.TrimSpace(session)
	unlock, err := s.lockSession(session)
	if err != nil {
		return CartView{}, err
	}
	defer unlock()

	store := s.Open(session)
	if err := fn(store); err != nil {
		return CartView{}, err
	}
	return buildCartView(store), nil
}

func (s *CartService) lockSession(session string) (func(), error) {
	unlock := s.locks.Lock(session)
	ctx, cancel := context.WithTimeout(context.Background(), cartLockWait)
	defer cancel()
	release, err := cache.AcquireLock(ctx, "cart:lock:"+session, cartLockTTL, cartLockWait)
	if err != nil {
		unlock()
		logger.Warnw("cart_session_lock_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCartBusy, err)
	}
	return func() {
		release()
		unlock()
	}, nil
}

// AddItem 加入询价车，已存在时数量加一
func (s *CartService) AddItem(session string, productID uint) (CartView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return CartView{}, err
	}
	if product == nil {
		return CartView{}, ErrProductNotFound
	}
	if product.Stock <= 0 {
		return CartView{}, ErrProductOutOfStock
	}

	snapshot := cart.ProductSnapshot{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price.Decimal,
		Image:     product.MainImage(),
	}
	return s.WithCart(session, func(store *cart.Store) error {
		store.AddItem(snapshot)
		return nil
	})
}

// UpdateQuantity 设置条目数量，小于等于 0 时移除
func (s *CartService) UpdateQuantity(session string, productID uint, quantity int) (CartView, error) {
	return s.WithCart(session, func(store *cart.Store) error {
		store.UpdateQuantity(productID, quantity)
		return nil
	})
}

// RemoveItem 移除条目
func (s *CartService) RemoveItem(session string, productID uint) (CartView, error) {
	return s.WithCart(session, func(store *cart.Store) error {
		store.RemoveItem(productID)
		return nil
	})
}

// Clear 清空询价车
func (s *CartService) Clear(session string) (CartView, error) {
	return s.WithCart(session, func(store *cart.Store) error {
		store.Clear()
		return nil
	})
}

// RecordSearch 记录最近搜索词，失败只记日志
func (s *CartService) RecordSearch(ctx context.Context, session, term string) {
	if err := cache.PushRecentSearch(ctx, session, term); err != nil {
		logger.Debugw("recent_search_push_failed", "error", err)
	}
}

// RecentSearches 获取最近搜索词
func (s *CartService) RecentSearches(ctx context.Context, session string) []string {
	terms, err := cache.RecentSearches(ctx, session)
	if err != nil {
		logger.Debugw("recent_search_load_failed", "error", err)
		return []string{}
	}
	if terms == nil {
		return []string{}
	}
	return terms
}

// ClearRecentSearches 清空最近搜索词
func (s *CartService) ClearRecentSearches(ctx context.Context, session string) error {
	return cache.ClearRecentSearches(ctx, session)
}

func buildCartView(store *cart.Store) CartView {
	return CartView{
		Items:      store.Items(),
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}
