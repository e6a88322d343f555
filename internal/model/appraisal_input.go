package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppraisalInput 考核表单模板及其投放范围。
// 每个考核小节最多挂一份表单（创建时校验）；投放范围可以是全局、
// 部门组或显式的部门 ID 列表。
type AppraisalInput struct {
	ID                 string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title              string         `gorm:"type:varchar(200)" json:"title"`
	Description        string         `gorm:"type:text" json:"description"`
	AppraisalSectionID string         `gorm:"type:varchar(36);not null;index" json:"appraisal_section_id"`
	DepartmentGroupID  *string        `gorm:"type:varchar(36);index" json:"department_group_id,omitempty"`
	AppraisalID        *string        `gorm:"type:varchar(36);index" json:"appraisal_id,omitempty"`
	FormFields         datatypes.JSON `gorm:"type:json" json:"form_fields"`    // []FormGroup
	DepartmentIDs      datatypes.JSON `gorm:"type:json" json:"department_ids"` // []string (uuid)
	IsGlobal           bool           `gorm:"default:false;index" json:"is_global"`
	// 不设列默认值：设了默认值后 GORM 会省略零值字段，false 无法落库
	IsActive           bool           `gorm:"index" json:"is_active"`
	CreatedAt          time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	AppraisalSection *AppraisalSection `gorm:"foreignKey:AppraisalSectionID" json:"appraisal_section,omitempty"`
	DepartmentGroup  *DepartmentGroup  `gorm:"foreignKey:DepartmentGroupID" json:"department_group,omitempty"`
	Appraisal        *Appraisal        `gorm:"foreignKey:AppraisalID" json:"appraisal,omitempty"`
}

// TableName 指定表名
func (AppraisalInput) TableName() string {
	return "appraisal_inputs"
}

func (i *AppraisalInput) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Template 解析表单模板
func (i *AppraisalInput) Template() ([]FormGroup, error) {
	return ParseFormGroups(i.FormFields)
}

// DepartmentIDList 解析投放的部门 ID 列表
func (i *AppraisalInput) DepartmentIDList() []string {
	if len(i.DepartmentIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(i.DepartmentIDs, &ids); err != nil {
		return nil
	}
	return ids
}
