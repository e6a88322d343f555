package repository

import (
	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// SectionRepository 考核小节仓储
type SectionRepository struct {
	*Store[model.AppraisalSection]
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{
		Store: NewStore[model.AppraisalSection](db, "AppraisalCycle"),
	}
}

// FindByCycle 查找周期下的所有小节
func (r *SectionRepository) FindByCycle(cycleID string, opts ListOptions) ([]model.AppraisalSection, error) {
	query := r.DB().Model(&model.AppraisalSection{}).
		Where("appraisal_cycle_id = ?", cycleID)
	query, err := ApplyListOptions(query, opts)
	if err != nil {
		return nil, err
	}
	var sections []model.AppraisalSection
	if err := query.Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// NameExistsInCycle 检查节名在周期内是否已被占用，excludeID 用于更新时排除自身
func (r *SectionRepository) NameExistsInCycle(cycleID, name, excludeID string) (bool, error) {
	var count int64
	query := r.DB().Model(&model.AppraisalSection{}).
		Where("appraisal_cycle_id = ? AND name = ?", cycleID, name)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountByCycle 统计周期下的小节数量
func (r *SectionRepository) CountByCycle(cycleID string) (int64, error) {
	var count int64
	err := r.DB().Model(&model.AppraisalSection{}).
		Where("appraisal_cycle_id = ?", cycleID).
		Count(&count).Error
	return count, err
}
