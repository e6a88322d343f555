package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppraisalCycle 考核周期（例如年度考核、季度考核）
type AppraisalCycle struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Year        string    `gorm:"type:varchar(10);index" json:"year"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	AppraisalSections []AppraisalSection `gorm:"foreignKey:AppraisalCycleID" json:"appraisal_sections,omitempty"`
}

// TableName 指定表名
func (AppraisalCycle) TableName() string {
	return "appraisal_cycles"
}

func (c *AppraisalCycle) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
