package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ListOptions 列表查询参数（分页 + 排序）
type ListOptions struct {
	Skip           int
	Limit          int
	OrderBy        string
	OrderDirection string
}

// 默认排序：按创建时间倒序
const (
	defaultOrderColumn    = "created_at"
	defaultOrderDirection = "desc"
	defaultLimit          = 100
)

// Normalize 填充分页默认值
func (o *ListOptions) Normalize() {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
}

// sortKeys 排序字段白名单：请求里的排序键 -> 实际列名
// 不做反射推导，新增可排序字段必须显式登记
var sortKeys = map[string]string{
	"id":           "id",
	"name":         "name",
	"title":        "title",
	"year":         "year",
	"created_at":   "created_at",
	"created_date": "created_at",
	"updated_at":   "updated_at",
	"updated_date": "updated_at",
}

// ResolveSortKey 将请求的排序键解析为列名，不在白名单内返回 ErrInvalidSortKey
func ResolveSortKey(key string) (string, error) {
	if key == "" {
		return defaultOrderColumn, nil
	}
	column, ok := sortKeys[strings.ToLower(key)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidSortKey, key)
	}
	return column, nil
}

// resolveDirection 排序方向只接受 asc/desc，其余情况取 fallback
func resolveDirection(direction, fallback string) string {
	switch strings.ToLower(direction) {
	case "asc":
		return "asc"
	case "desc":
		return "desc"
	default:
		return fallback
	}
}

// ApplyListOptions 将分页和排序应用到查询上。
// 排序键非法时返回错误，不静默回退到默认排序。
// 未指定排序键时按创建时间倒序，指定排序键后方向默认升序。
// table 非空时排序列带表前缀，联表查询用它消除列名歧义。
func ApplyListOptions(query *gorm.DB, opts ListOptions, table ...string) (*gorm.DB, error) {
	opts.Normalize()

	column, err := ResolveSortKey(opts.OrderBy)
	if err != nil {
		return nil, err
	}
	fallback := "asc"
	if opts.OrderBy == "" {
		fallback = defaultOrderDirection
	}
	direction := resolveDirection(opts.OrderDirection, fallback)

	if len(table) > 0 && table[0] != "" {
		column = table[0] + "." + column
	}
	return query.Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(opts.Skip).
		Limit(opts.Limit), nil
}
