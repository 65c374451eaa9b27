package service

import (
	"sort"
	"strings"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// SearchLimitModal 搜索弹窗默认条数
	SearchLimitModal = 20
	// SearchLimitPage 搜索结果页条数
	SearchLimitPage = 50
	// SearchLimitMax 单次搜索条数上限
	SearchLimitMax = 100
)

// ProductScanner 提供全量商品用于线性检索，可替换为索引实现
type ProductScanner interface {
	ListAll() ([]models.Product, error)
}

// SearchQuery 搜索条件，各过滤条件为 AND 关系
type SearchQuery struct {
	Term        string
	CategoryID  uint
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Limit       int
}

// SearchService 商品搜索服务
type SearchService struct {
	scanner ProductScanner
	cfg     config.SearchConfig
}

// NewSearchService 创建商品搜索服务
func NewSearchService(scanner ProductScanner, cfg config.SearchConfig) *SearchService {
	return &SearchService{scanner: scanner, cfg: cfg}
}

// Search 按关键词检索商品：标题命中优先，其次按浏览量降序
func (s *SearchService) Search(query SearchQuery) ([]models.Product, error) {
	term := strings.ToLower(strings.TrimSpace(query.Term))
	if term == "" {
		return []models.Product{}, nil
	}
	if query.MinPrice != nil && query.MaxPrice != nil && query.MinPrice.GreaterThan(*query.MaxPrice) {
		return []models.Product{}, nil
	}

	products, err := s.scanner.ListAll()
	if err != nil {
		return nil, err
	}

	type hit struct {
		product    models.Product
		titleMatch bool
	}
	hits := make([]hit, 0)
	for _, product := range products {
		if !matchesFilters(product, query) {
			continue
		}
		titleMatch := strings.Contains(strings.ToLower(product.Title), term)
		if !titleMatch && !matchesSecondaryFields(product, term) {
			continue
		}
		hits = append(hits, hit{product: product, titleMatch: titleMatch})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].titleMatch != hits[j].titleMatch {
			return hits[i].titleMatch
		}
		return hits[i].product.Views > hits[j].product.Views
	})

	limit := s.resolveLimit(query.Limit)
	if len(hits) > limit {
		hits = hits[:limit]
	}
	result := make([]models.Product, 0, len(hits))
	for _, h := range hits {
		result = append(result, h.product)
	}
	return result, nil
}

func (s *SearchService) resolveLimit(limit int) int {
	fallback := s.cfg.ModalLimit
	if fallback <= 0 {
		fallback = SearchLimitModal
	}
	maxLimit := s.cfg.MaxLimit
	if maxLimit <= 0 {
		maxLimit = SearchLimitMax
	}
	if limit <= 0 {
		limit = fallback
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

func matchesFilters(product models.Product, query SearchQuery) bool {
	if query.CategoryID != 0 && product.CategoryID != query.CategoryID {
		return false
	}
	if query.MinPrice != nil && product.Price.LessThan(*query.MinPrice) {
		return false
	}
	if query.MaxPrice != nil && product.Price.GreaterThan(*query.MaxPrice) {
		return false
	}
	if query.InStockOnly && product.Stock <= 0 {
		return false
	}
	return true
}

func matchesSecondaryFields(product models.Product, term string) bool {
	fields := []string{product.Description, product.Brand, product.OEMNumber}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	for _, model := range product.CompatibleModels {
		if strings.Contains(strings.ToLower(model), term) {
			return true
		}
	}
	return false
}
