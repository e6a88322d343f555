package repository

import (
	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// AppraisalRepository 考核活动仓储
type AppraisalRepository struct {
	*Store[model.Appraisal]
}

func NewAppraisalRepository(db *gorm.DB) *AppraisalRepository {
	return &AppraisalRepository{
		Store: NewStore[model.Appraisal](db),
	}
}

// FindByYearAndCycle 查找某年某周期的考核活动
func (r *AppraisalRepository) FindByYearAndCycle(year int, cycle string) ([]model.Appraisal, error) {
	var appraisals []model.Appraisal
	err := r.DB().Model(&model.Appraisal{}).
		Where("year = ? AND cycle = ?", year, cycle).
		Order("created_at desc").
		Find(&appraisals).Error
	return appraisals, err
}

// NameExistsInPeriod 检查同年同周期内是否已有同名考核活动
func (r *AppraisalRepository) NameExistsInPeriod(name string, year int, cycle string, excludeID string) (bool, error) {
	var count int64
	query := r.DB().Model(&model.Appraisal{}).
		Where("name = ? AND year = ? AND cycle = ?", name, year, cycle)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
