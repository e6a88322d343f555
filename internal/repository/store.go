package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store 通用仓储，所有实体仓储共用同一套 CRUD 实现
// preloads 是该实体查询时默认加载的关联
type Store[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewStore 创建通用仓储
func NewStore[T any](db *gorm.DB, preloads ...string) *Store[T] {
	return &Store[T]{db: db, preloads: preloads}
}

// DB 返回底层连接，供实体仓储编写自定义查询
func (s *Store[T]) DB() *gorm.DB {
	return s.db
}

// withPreloads 附加默认关联
func (s *Store[T]) withPreloads(query *gorm.DB) *gorm.DB {
	for _, preload := range s.preloads {
		query = query.Preload(preload)
	}
	return query
}

// Create 创建记录，unique 指定需要预检的唯一字段（字段名 -> 值）
// 任一唯一字段已存在时返回 ErrConflict
func (s *Store[T]) Create(obj *T, unique map[string]any) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for field, value := range unique {
			var count int64
			if err := tx.Model(new(T)).Where(fmt.Sprintf("%s = ?", field), value).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: %s already exists", ErrConflict, field)
			}
		}
		return tx.Create(obj).Error
	})
}

// GetByID 根据ID查找记录（带默认关联）
func (s *Store[T]) GetByID(id string) (*T, error) {
	var obj T
	err := s.withPreloads(s.db).Where("id = ?", id).First(&obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &obj, nil
}

// GetByField 根据单个字段查找记录
func (s *Store[T]) GetByField(field string, value any) (*T, error) {
	var obj T
	err := s.withPreloads(s.db).Where(fmt.Sprintf("%s = ?", field), value).First(&obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &obj, nil
}

// GetAllByIDs 批量按ID查找，缺失的ID直接跳过不报错
// 返回 ID -> 记录 的映射，供列表接口做关联数据填充
func (s *Store[T]) GetAllByIDs(ids []string) (map[string]*T, error) {
	result := make(map[string]*T, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var objs []T
	if err := s.db.Where("id IN ?", ids).Find(&objs).Error; err != nil {
		return nil, err
	}

	type identifiable interface{ GetID() string }
	for i := range objs {
		if obj, ok := any(&objs[i]).(identifiable); ok {
			result[obj.GetID()] = &objs[i]
		}
	}
	return result, nil
}

// Update 稀疏更新：只写入 updates 里出现的列，其余列不动
// 更新后重新加载记录返回
func (s *Store[T]) Update(id string, updates map[string]any) (*T, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(id)
}

// Delete 根据ID删除记录
func (s *Store[T]) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List 分页列表查询
func (s *Store[T]) List(opts ListOptions) ([]T, error) {
	query, err := ApplyListOptions(s.withPreloads(s.db.Model(new(T))), opts)
	if err != nil {
		return nil, err
	}
	var objs []T
	if err := query.Find(&objs).Error; err != nil {
		return nil, err
	}
	return objs, nil
}

// Count 记录总数
func (s *Store[T]) Count() (int64, error) {
	var count int64
	err := s.db.Model(new(T)).Count(&count).Error
	return count, err
}

// GetByFilters 按字段精确过滤的分页查询，返回记录和过滤后的总数
func (s *Store[T]) GetByFilters(filters map[string]any, opts ListOptions) ([]T, int64, error) {
	base := s.db.Model(new(T))
	for field, value := range filters {
		base = base.Where(fmt.Sprintf("%s = ?", field), value)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query, err := ApplyListOptions(s.withPreloads(base), opts)
	if err != nil {
		return nil, 0, err
	}
	var objs []T
	if err := query.Find(&objs).Error; err != nil {
		return nil, 0, err
	}
	return objs, total, nil
}

// SearchByPattern 按字段模糊匹配的分页查询
func (s *Store[T]) SearchByPattern(field, pattern string, opts ListOptions) ([]T, error) {
	query := s.withPreloads(s.db.Model(new(T))).
		Where(fmt.Sprintf("%s LIKE ?", field), "%"+pattern+"%")
	query, err := ApplyListOptions(query, opts)
	if err != nil {
		return nil, err
	}
	var objs []T
	if err := query.Find(&objs).Error; err != nil {
		return nil, err
	}
	return objs, nil
}
