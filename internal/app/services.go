package app

import (
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/config"
)

// Services 所有业务服务的集合
type Services struct {
	Auth            *service.AuthService
	Cycle           *service.CycleService
	Section         *service.SectionService
	Input           *service.InputService
	Submission      *service.SubmissionService
	Appraisal       *service.AppraisalService
	DepartmentGroup *service.DepartmentGroupService
	Organization    *service.OrganizationService
}

// InitializeServices 初始化所有业务服务
func InitializeServices(repos *Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:            service.NewAuthService(repos.User, cfg.Security.JWTSecret, cfg.Security.TokenExpireHours),
		Cycle:           service.NewCycleService(repos.Cycle, repos.Section),
		Section:         service.NewSectionService(repos.Section, repos.Cycle),
		Input:           service.NewInputService(repos.Input, repos.Section, repos.DepartmentGroup, repos.Staff, repos.Submission),
		Submission:      service.NewSubmissionService(repos.Submission, repos.Input, repos.Staff, cfg.Summary.CacheTTL),
		Appraisal:       service.NewAppraisalService(repos.Appraisal),
		DepartmentGroup: service.NewDepartmentGroupService(repos.DepartmentGroup, repos.Department, repos.Input),
		Organization:    service.NewOrganizationService(repos.Department, repos.Staff),
	}
}
