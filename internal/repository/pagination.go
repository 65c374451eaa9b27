package repository

import "gorm.io/gorm"

const maxPageSize = 200

// applyPagination 应用分页参数，非法页码按第一页处理，pageSize 超上限时截断。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}

// applyLimit 限制返回条数，limit <= 0 时使用默认值。
func applyLimit(query *gorm.DB, limit, fallback int) *gorm.DB {
	if limit <= 0 {
		limit = fallback
	}
	return query.Limit(limit)
}
