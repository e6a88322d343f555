package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentGroup 部门组，用于表单的批量投放
type DepartmentGroup struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	DepartmentID string    `gorm:"type:varchar(36);index" json:"department_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (DepartmentGroup) TableName() string {
	return "department_groups"
}

func (g *DepartmentGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}
