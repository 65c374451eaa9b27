package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	Search       string
	FeaturedOnly bool
	WithCategory bool
}

// BlogPostListFilter 查询文章列表的过滤条件
type BlogPostListFilter struct {
	Page          int
	PageSize      int
	Search        string
	OnlyPublished bool
}

// EnquiryListFilter 查询询价单列表的过滤条件
type EnquiryListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ContactListFilter 查询联系留言列表的过滤条件
type ContactListFilter struct {
	Page     int
	PageSize int
	Status   string
}
