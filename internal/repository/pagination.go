package repository

import "gorm.io/gorm"

// pageWindow 把页码换算为偏移量，pageSize <= 0 表示不分页
func pageWindow(page, pageSize int) (offset int, limited bool) {
	if pageSize <= 0 {
		return 0, false
	}
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize, true
}

// applyPagination 商品、订单、用户列表的 SQL 分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	offset, limited := pageWindow(page, pageSize)
	if query == nil || !limited {
		return query
	}
	return query.Limit(pageSize).Offset(offset)
}

// paginate 内存存储按同样规则切片，越界页返回空切片
func paginate[T any](items []T, page, pageSize int) []T {
	offset, limited := pageWindow(page, pageSize)
	if !limited {
		return items
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
