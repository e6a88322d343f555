package repository

import (
	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// InputRepository 考核表单仓储
type InputRepository struct {
	*Store[model.AppraisalInput]
}

func NewInputRepository(db *gorm.DB) *InputRepository {
	return &InputRepository{
		Store: NewStore[model.AppraisalInput](db, "AppraisalSection", "DepartmentGroup"),
	}
}

// ExistsForSection 检查小节下是否已经挂了表单（一个小节只允许一份表单）
func (r *InputRepository) ExistsForSection(sectionID string) (bool, error) {
	var count int64
	err := r.DB().Model(&model.AppraisalInput{}).
		Where("appraisal_section_id = ?", sectionID).
		Count(&count).Error
	return count > 0, err
}

// FindBySection 查找小节下的表单
func (r *InputRepository) FindBySection(sectionID string) (*model.AppraisalInput, error) {
	return r.GetByField("appraisal_section_id", sectionID)
}

// FindActive 查找所有启用的表单
func (r *InputRepository) FindActive(opts ListOptions) ([]model.AppraisalInput, error) {
	query := r.DB().Model(&model.AppraisalInput{}).Where("is_active = ?", true)
	query, err := ApplyListOptions(query, opts)
	if err != nil {
		return nil, err
	}
	var inputs []model.AppraisalInput
	if err := query.Find(&inputs).Error; err != nil {
		return nil, err
	}
	return inputs, nil
}

// FindVisibleToDepartment 查找对某个部门可见的启用表单。
// 可见性三选一：全局投放、表单所挂部门组指向该部门、
// 或部门 ID 出现在表单的显式投放列表里（JSON 列，应用层过滤）。
func (r *InputRepository) FindVisibleToDepartment(departmentID string) ([]model.AppraisalInput, error) {
	var inputs []model.AppraisalInput
	err := r.DB().Model(&model.AppraisalInput{}).
		Preload("AppraisalSection").
		Preload("DepartmentGroup").
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&inputs).Error
	if err != nil {
		return nil, err
	}

	var visible []model.AppraisalInput
	for _, input := range inputs {
		if input.IsGlobal {
			visible = append(visible, input)
			continue
		}
		if input.DepartmentGroup != nil && input.DepartmentGroup.DepartmentID == departmentID {
			visible = append(visible, input)
			continue
		}
		for _, id := range input.DepartmentIDList() {
			if id == departmentID {
				visible = append(visible, input)
				break
			}
		}
	}
	return visible, nil
}

// CountByDepartmentGroup 统计挂在某个部门组下的表单数量（删除部门组前检查引用）
func (r *InputRepository) CountByDepartmentGroup(groupID string) (int64, error) {
	var count int64
	err := r.DB().Model(&model.AppraisalInput{}).
		Where("department_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
