package repository

import (
	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// DepartmentGroupRepository 部门组仓储
type DepartmentGroupRepository struct {
	*Store[model.DepartmentGroup]
}

func NewDepartmentGroupRepository(db *gorm.DB) *DepartmentGroupRepository {
	return &DepartmentGroupRepository{
		Store: NewStore[model.DepartmentGroup](db, "Department"),
	}
}

// FindByDepartment 查找挂在某个部门下的所有部门组
func (r *DepartmentGroupRepository) FindByDepartment(departmentID string) ([]model.DepartmentGroup, error) {
	var groups []model.DepartmentGroup
	err := r.DB().Model(&model.DepartmentGroup{}).
		Preload("Department").
		Where("department_id = ?", departmentID).
		Order("created_at desc").
		Find(&groups).Error
	return groups, err
}

// NameExistsInDepartment 检查组名在部门内是否已被占用
func (r *DepartmentGroupRepository) NameExistsInDepartment(departmentID, name, excludeID string) (bool, error) {
	var count int64
	query := r.DB().Model(&model.DepartmentGroup{}).
		Where("department_id = ? AND name = ?", departmentID, name)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
