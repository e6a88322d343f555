package app

import (
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/database"
)

// Repositories 所有仓储的集合
type Repositories struct {
	User            *repository.UserRepository
	Cycle           *repository.CycleRepository
	Section         *repository.SectionRepository
	Input           *repository.InputRepository
	Submission      *repository.SubmissionRepository
	Appraisal       *repository.AppraisalRepository
	DepartmentGroup *repository.DepartmentGroupRepository
	Department      *repository.DepartmentRepository
	Staff           *repository.StaffRepository
}

// InitializeRepositories 初始化所有仓储
func InitializeRepositories() *Repositories {
	db := database.DB
	return &Repositories{
		User:            repository.NewUserRepository(db),
		Cycle:           repository.NewCycleRepository(db),
		Section:         repository.NewSectionRepository(db),
		Input:           repository.NewInputRepository(db),
		Submission:      repository.NewSubmissionRepository(db),
		Appraisal:       repository.NewAppraisalRepository(db),
		DepartmentGroup: repository.NewDepartmentGroupRepository(db),
		Department:      repository.NewDepartmentRepository(db),
		Staff:           repository.NewStaffRepository(db),
	}
}
