package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppraisalSection 考核周期下的小节，节名只在所属周期内唯一（复合唯一索引）
type AppraisalSection struct {
	ID               string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name             string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_section_cycle_name" json:"name"`
	Description      string    `gorm:"type:text" json:"description"`
	AppraisalCycleID string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_section_cycle_name" json:"appraisal_cycle_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	AppraisalCycle *AppraisalCycle `gorm:"foreignKey:AppraisalCycleID" json:"appraisal_cycle,omitempty"`
}

// TableName 指定表名
func (AppraisalSection) TableName() string {
	return "appraisal_sections"
}

func (s *AppraisalSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
