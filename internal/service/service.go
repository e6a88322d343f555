// Package service 提供统一的 service 导出
// 所有 service 按功能模块分类到子目录中
package service

import (
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
	authService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/auth"
)

// Auth services
type AuthService = authService.AuthService

var NewAuthService = authService.NewAuthService

// Appraisal services
type CycleService = appraisalService.CycleService
type SectionService = appraisalService.SectionService
type InputService = appraisalService.InputService
type SubmissionService = appraisalService.SubmissionService
type AppraisalService = appraisalService.AppraisalService
type DepartmentGroupService = appraisalService.DepartmentGroupService
type OrganizationService = appraisalService.OrganizationService

var NewCycleService = appraisalService.NewCycleService
var NewSectionService = appraisalService.NewSectionService
var NewInputService = appraisalService.NewInputService
var NewSubmissionService = appraisalService.NewSubmissionService
var NewAppraisalService = appraisalService.NewAppraisalService
var NewDepartmentGroupService = appraisalService.NewDepartmentGroupService
var NewOrganizationService = appraisalService.NewOrganizationService
