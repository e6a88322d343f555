package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
)

// DepartmentRepository 部门仓储
type DepartmentRepository struct {
	*Store[model.Department]
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{
		Store: NewStore[model.Department](db),
	}
}

// Delete 删除部门，仍有员工或部门组引用时拒绝删除
func (r *DepartmentRepository) Delete(id string) error {
	return r.DB().Transaction(func(tx *gorm.DB) error {
		var staffCount int64
		if err := tx.Model(&model.Staff{}).
			Where("department_id = ?", id).
			Count(&staffCount).Error; err != nil {
			return err
		}
		if staffCount > 0 {
			return fmt.Errorf("%w: department still has %d staff member(s)", ErrConflict, staffCount)
		}

		var groupCount int64
		if err := tx.Model(&model.DepartmentGroup{}).
			Where("department_id = ?", id).
			Count(&groupCount).Error; err != nil {
			return err
		}
		if groupCount > 0 {
			return fmt.Errorf("%w: department still has %d group(s)", ErrConflict, groupCount)
		}

		result := tx.Where("id = ?", id).Delete(&model.Department{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// StaffRepository 员工仓储
type StaffRepository struct {
	*Store[model.Staff]
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{
		Store: NewStore[model.Staff](db, "Department"),
	}
}

// FindByDepartment 查找部门下的所有员工
func (r *StaffRepository) FindByDepartment(departmentID string, opts ListOptions) ([]model.Staff, error) {
	query := r.DB().Model(&model.Staff{}).
		Preload("Department").
		Where("department_id = ?", departmentID)
	query, err := ApplyListOptions(query, opts)
	if err != nil {
		return nil, err
	}
	var staff []model.Staff
	if err := query.Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// FindByEmail 根据邮箱查找员工
func (r *StaffRepository) FindByEmail(email string) (*model.Staff, error) {
	return r.GetByField("email", email)
}
