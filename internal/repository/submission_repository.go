package repository

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// SubmissionFilter 作答记录的过滤条件，零值字段不参与过滤
type SubmissionFilter struct {
	AppraisalID       string
	AppraisalInputID  string
	StaffID           string
	DepartmentID      string
	DepartmentGroupID string
	Year              int
	Cycle             string
	Submitted         *bool
	Completed         *bool
}

// SubmissionRepository 作答记录仓储
type SubmissionRepository struct {
	*Store[model.AppraisalSubmission]
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{
		Store: NewStore[model.AppraisalSubmission](db, "AppraisalInput", "Staff"),
	}
}

// applyFilter 拼装过滤条件。部门组和部门条件沿归属链联表：
// 作答记录 → 表单 → 部门组 → 部门；年份和周期条件联考核表。
func applyFilter(query *gorm.DB, filter SubmissionFilter) *gorm.DB {
	if filter.AppraisalID != "" {
		query = query.Where("appraisal_submissions.appraisal_id = ?", filter.AppraisalID)
	}
	if filter.AppraisalInputID != "" {
		query = query.Where("appraisal_submissions.appraisal_input_id = ?", filter.AppraisalInputID)
	}
	if filter.StaffID != "" {
		query = query.Where("appraisal_submissions.staff_id = ?", filter.StaffID)
	}
	if filter.Submitted != nil {
		query = query.Where("appraisal_submissions.submitted = ?", *filter.Submitted)
	}
	if filter.Completed != nil {
		query = query.Where("appraisal_submissions.completed = ?", *filter.Completed)
	}
	if filter.DepartmentGroupID != "" || filter.DepartmentID != "" {
		query = query.Joins("JOIN appraisal_inputs ON appraisal_inputs.id = appraisal_submissions.appraisal_input_id")
		if filter.DepartmentGroupID != "" {
			query = query.Where("appraisal_inputs.department_group_id = ?", filter.DepartmentGroupID)
		}
		if filter.DepartmentID != "" {
			query = query.
				Joins("JOIN department_groups ON department_groups.id = appraisal_inputs.department_group_id").
				Where("department_groups.department_id = ?", filter.DepartmentID)
		}
	}
	if filter.Year != 0 || filter.Cycle != "" {
		query = query.Joins("JOIN appraisals ON appraisals.id = appraisal_submissions.appraisal_id")
		if filter.Year != 0 {
			query = query.Where("appraisals.year = ?", filter.Year)
		}
		if filter.Cycle != "" {
			query = query.Where("appraisals.cycle = ?", filter.Cycle)
		}
	}
	return query
}

// FindFiltered 按过滤条件分页查询作答记录
func (r *SubmissionRepository) FindFiltered(filter SubmissionFilter, opts ListOptions) ([]model.AppraisalSubmission, int64, error) {
	query := applyFilter(r.DB().Model(&model.AppraisalSubmission{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 联表后排序列带表前缀，避免 created_at 歧义
	query, err := ApplyListOptions(query.Preload("AppraisalInput").Preload("Staff"), opts, "appraisal_submissions")
	if err != nil {
		return nil, 0, err
	}
	var submissions []model.AppraisalSubmission
	if err := query.Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}

// FindAllFiltered 按过滤条件查询全部作答记录（不分页，供汇总聚合使用）
func (r *SubmissionRepository) FindAllFiltered(filter SubmissionFilter) ([]model.AppraisalSubmission, error) {
	var submissions []model.AppraisalSubmission
	err := applyFilter(r.DB().Model(&model.AppraisalSubmission{}), filter).
		Preload("AppraisalInput").
		Order("appraisal_submissions.created_at desc").
		Find(&submissions).Error
	return submissions, err
}

// FindByStaff 查找员工的所有作答记录（带表单模板，供汇总使用）
func (r *SubmissionRepository) FindByStaff(staffID string) ([]model.AppraisalSubmission, error) {
	var submissions []model.AppraisalSubmission
	err := r.DB().Model(&model.AppraisalSubmission{}).
		Preload("AppraisalInput").
		Where("staff_id = ?", staffID).
		Order("created_at desc").
		Find(&submissions).Error
	return submissions, err
}

// FindByStaffAndInput 查找员工针对某份表单的作答记录
func (r *SubmissionRepository) FindByStaffAndInput(staffID, inputID string) (*model.AppraisalSubmission, error) {
	var submission model.AppraisalSubmission
	err := r.DB().
		Where("staff_id = ? AND appraisal_input_id = ?", staffID, inputID).
		First(&submission).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// UpdateDataCAS 以乐观锁方式替换答案文档：仅当数据库里的版本号
// 仍等于调用方读到的版本号时写入，并把版本号加一。
// 版本不匹配（并发写已领先）返回 ErrVersionConflict，调用方重读后重试。
func (r *SubmissionRepository) UpdateDataCAS(id string, version int, data datatypes.JSONMap, extra map[string]any) error {
	updates := map[string]any{
		"data":    data,
		"version": version + 1,
	}
	for column, value := range extra {
		updates[column] = value
	}

	result := r.DB().Model(&model.AppraisalSubmission{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// 记录不存在或版本已前移，区分两种情况
		var count int64
		if err := r.DB().Model(&model.AppraisalSubmission{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

// SetFlags 更新提交/完成标记
func (r *SubmissionRepository) SetFlags(id string, flags map[string]any) (*model.AppraisalSubmission, error) {
	return r.Update(id, flags)
}

// CountByInput 统计某份表单下的作答记录数量（删除表单前检查引用）
func (r *SubmissionRepository) CountByInput(inputID string) (int64, error) {
	var count int64
	err := r.DB().Model(&model.AppraisalSubmission{}).
		Where("appraisal_input_id = ?", inputID).
		Count(&count).Error
	return count, err
}
