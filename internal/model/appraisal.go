package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Appraisal 考核活动（历史遗留的扁平模板路径）。
// Cycle 为周期标识字符串（如 H1/H2），FormFields 为扁平的字段列表。
type Appraisal struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Year        int            `gorm:"index" json:"year"`
	Cycle       string         `gorm:"type:varchar(50);index" json:"cycle"`
	CycleID     *string        `gorm:"type:varchar(36);index" json:"cycle_id,omitempty"`
	FormFields  datatypes.JSON `gorm:"type:json" json:"form_fields"` // []FormField
	PeriodFrom  *time.Time     `json:"period_from,omitempty"`
	PeriodTo    *time.Time     `json:"period_to,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Appraisal) TableName() string {
	return "appraisals"
}

func (a *Appraisal) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
