package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// CycleRepository 考核周期仓储
type CycleRepository struct {
	*Store[model.AppraisalCycle]
}

func NewCycleRepository(db *gorm.DB) *CycleRepository {
	return &CycleRepository{
		Store: NewStore[model.AppraisalCycle](db, "AppraisalSections"),
	}
}

// FindByName 根据名称查找周期
func (r *CycleRepository) FindByName(name string) (*model.AppraisalCycle, error) {
	return r.GetByField("name", name)
}

// Delete 删除周期，仍有小节挂在周期下时拒绝删除
func (r *CycleRepository) Delete(id string) error {
	return r.DB().Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.AppraisalSection{}).
			Where("appraisal_cycle_id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cycle still has %d section(s)", ErrConflict, count)
		}

		result := tx.Where("id = ?", id).Delete(&model.AppraisalCycle{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ReplaceSections 整体替换周期下的小节：删除旧小节后按顺序创建新小节
// 与周期字段更新在同一事务内完成
func (r *CycleRepository) ReplaceSections(cycleID string, updates map[string]any, sections []model.AppraisalSection) error {
	return r.DB().Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.AppraisalCycle{}).
				Where("id = ?", cycleID).
				Updates(updates).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("appraisal_cycle_id = ?", cycleID).
			Delete(&model.AppraisalSection{}).Error; err != nil {
			return err
		}

		for i := range sections {
			sections[i].AppraisalCycleID = cycleID
			if err := tx.Create(&sections[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
