package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppraisalSubmission 员工针对某份考核表单的作答记录。
// Data 为嵌套 JSON 文档：组名 → 字段名 → 答案。
// Completed 为 true 后答案文档不可再修改。
// Version 为乐观锁计数器，答案更新走 compare-and-swap，防止并发丢失更新。
type AppraisalSubmission struct {
	ID               string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AppraisalInputID string            `gorm:"type:varchar(36);not null;index" json:"appraisal_input_id"`
	AppraisalID      string            `gorm:"type:varchar(36);not null;index" json:"appraisal_id"`
	StaffID          string            `gorm:"type:varchar(36);not null;index" json:"staff_id"`
	Data             datatypes.JSONMap `gorm:"type:json" json:"data"`
	Submitted        bool              `gorm:"default:false;index" json:"submitted"`
	Completed        bool              `gorm:"default:false;index" json:"completed"`
	Version          int               `gorm:"default:0" json:"version"`
	StartedAt        *time.Time        `json:"started_at,omitempty"`
	CreatedAt        time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	AppraisalInput *AppraisalInput `gorm:"foreignKey:AppraisalInputID" json:"appraisal_input,omitempty"`
	Appraisal      *Appraisal      `gorm:"foreignKey:AppraisalID" json:"appraisal,omitempty"`
	Staff          *Staff          `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// TableName 指定表名
func (AppraisalSubmission) TableName() string {
	return "appraisal_submissions"
}

func (s *AppraisalSubmission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Data == nil {
		s.Data = datatypes.JSONMap{}
	}
	return nil
}

// Answer 按组名/字段名读取已记录的答案；不存在时返回 (nil, false)
func (s *AppraisalSubmission) Answer(groupName, fieldName string) (any, bool) {
	group, ok := s.Data[groupName].(map[string]any)
	if !ok {
		return nil, false
	}
	answer, ok := group[fieldName]
	return answer, ok
}
