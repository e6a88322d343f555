package app

import (
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/api/handler"
)

// Handlers 所有 HTTP handler 的集合
type Handlers struct {
	Auth            *handler.AuthHandler
	Cycle           *handler.CycleHandler
	Section         *handler.SectionHandler
	Input           *handler.InputHandler
	Submission      *handler.SubmissionHandler
	Appraisal       *handler.AppraisalHandler
	DepartmentGroup *handler.DepartmentGroupHandler
	Organization    *handler.OrganizationHandler
}

// InitializeHandlers 初始化所有 handler
func InitializeHandlers(services *Services) *Handlers {
	return &Handlers{
		Auth:            handler.NewAuthHandler(services.Auth),
		Cycle:           handler.NewCycleHandler(services.Cycle),
		Section:         handler.NewSectionHandler(services.Section),
		Input:           handler.NewInputHandler(services.Input),
		Submission:      handler.NewSubmissionHandler(services.Submission),
		Appraisal:       handler.NewAppraisalHandler(services.Appraisal),
		DepartmentGroup: handler.NewDepartmentGroupHandler(services.DepartmentGroup),
		Organization:    handler.NewOrganizationHandler(services.Organization),
	}
}
