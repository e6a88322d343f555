package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// FormField 表单字段定义
type FormField struct {
	FieldType string         `json:"field_type"`
	FieldName string         `json:"field_name"`
	FieldText string         `json:"field_text"`
	FieldHint string         `json:"field_hint,omitempty"`
	Order     int            `json:"order"`
	Required  bool           `json:"required"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// FormGroup 表单分组，组内包含有序的字段列表
type FormGroup struct {
	GroupName        string      `json:"group_name"`
	GroupDescription string      `json:"group_description,omitempty"`
	Fields           []FormField `json:"fields"`
}

// ParseFormGroups 解析 JSON 列中存储的表单模板
func ParseFormGroups(raw datatypes.JSON) ([]FormGroup, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var groups []FormGroup
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("invalid form template: %w", err)
	}
	return groups, nil
}

// MarshalFormGroups 将表单模板编码为 JSON 列的值
func MarshalFormGroups(groups []FormGroup) (datatypes.JSON, error) {
	data, err := json.Marshal(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form template: %w", err)
	}
	return datatypes.JSON(data), nil
}

// SummaryEntry 汇总报表中的单个字段条目；未作答的字段 Answer 为 null
type SummaryEntry struct {
	FieldName string `json:"field_name"`
	FieldText string `json:"field_text"`
	Answer    any    `json:"answer"`
}

// StaffSummary 单个员工的汇总结果，按模板分组组织
type StaffSummary struct {
	AppraisalID string                    `json:"appraisal_id"`
	StaffID     string                    `json:"staff_id"`
	Groups      map[string][]SummaryEntry `json:"groups"`
}
