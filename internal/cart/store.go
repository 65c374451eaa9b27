package cart

import (
	"encoding/json"
	"sync"

	"github.com/autoparts-enquiry/internal/logger"

	"github.com/shopspring/decimal"
)

// StorageKey 询价车持久化槽位
const StorageKey = "enquiry-cart"

// Item 询价车条目
type Item struct {
	ProductID uint            `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Subtotal 返回单价与数量之积
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ProductSnapshot 加入询价车时的商品快照
type ProductSnapshot struct {
	ProductID uint
	Title     string
	Price     decimal.Decimal
	Image     string
}

// Store 询价车状态，按首次加入顺序保存条目，每次变更后整体写回存储
type Store struct {
	mu      sync.Mutex
	storage Storage
	items   []Item
}

// New 创建询价车并从存储槽位恢复内容，数据缺失或损坏时从空车开始
func New(storage Storage) *Store {
	s := &Store{storage: storage}
	s.items = s.load()
	return s
}

// AddItem 已存在则数量加一，否则追加数量为 1 的新条目
func (s *Store) AddItem(snapshot ProductSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == snapshot.ProductID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}
	s.items = append(s.items, Item{
		ProductID: snapshot.ProductID,
		Title:     snapshot.Title,
		Price:     snapshot.Price,
		Quantity:  1,
		Image:     snapshot.Image,
	})
	s.persist()
}

// UpdateQuantity 设置数量为给定值，小于等于 0 时移除，条目不存在时忽略
func (s *Store) UpdateQuantity(productID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	if quantity <= 0 {
		s.removeAt(idx)
	} else {
		s.items[idx].Quantity = quantity
	}
	s.persist()
}

// RemoveItem 移除条目，不存在时忽略
func (s *Store) RemoveItem(productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.removeAt(idx)
	s.persist()
}

// Clear 清空询价车
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items 返回条目副本
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty 询价车是否为空
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// TotalItems 数量之和
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice 各条目小计之和
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sumSubtotals(s.items)
}

// SumSubtotals 计算条目小计之和
func SumSubtotals(items []Item) decimal.Decimal {
	return sumSubtotals(items)
}

func sumSubtotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) indexOf(productID uint) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(idx int) {
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}

func (s *Store) load() []Item {
	if s.storage == nil {
		return nil
	}
	raw, found, err := s.storage.Get(StorageKey)
	if err != nil {
		logger.Warnw("cart_storage_read_failed", "error", err)
		return nil
	}
	if !found || raw == "" {
		return nil
	}
	items, err := Decode(raw)
	if err != nil {
		logger.Debugw("cart_storage_corrupt_ignored", "error", err)
		return nil
	}
	return items
}

// persist 调用方需持有锁
func (s *Store) persist() {
	if s.storage == nil {
		return
	}
	raw, err := Encode(s.items)
	if err != nil {
		logger.Warnw("cart_encode_failed", "error", err)
		return
	}
	if err := s.storage.Set(StorageKey, raw); err != nil {
		logger.Warnw("cart_storage_write_failed", "error", err)
	}
}

// Encode 序列化条目列表
func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode 反序列化条目列表，丢弃不满足约束的条目并合并重复商品
func Decode(raw string) ([]Item, error) {
	var decoded []Item
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(decoded))
	seen := make(map[uint]int, len(decoded))
	for _, item := range decoded {
		if item.ProductID == 0 || item.Quantity < 1 {
			continue
		}
		if idx, ok := seen[item.ProductID]; ok {
			items[idx].Quantity += item.Quantity
			continue
		}
		seen[item.ProductID] = len(items)
		items = append(items, item)
	}
	return items, nil
}
