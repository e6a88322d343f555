package appraisal

import (
	"fmt"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// OrganizationService 部门与员工业务逻辑
type OrganizationService struct {
	deptRepo  *repository.DepartmentRepository
	staffRepo *repository.StaffRepository
}

func NewOrganizationService(deptRepo *repository.DepartmentRepository, staffRepo *repository.StaffRepository) *OrganizationService {
	return &OrganizationService{
		deptRepo:  deptRepo,
		staffRepo: staffRepo,
	}
}

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateStaffRequest 创建员工请求
type CreateStaffRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Title        string `json:"title"`
	DepartmentID string `json:"department_id" binding:"required"`
}

// UpdateStaffRequest 更新员工请求
type UpdateStaffRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Title        *string `json:"title"`
	DepartmentID *string `json:"department_id"`
}

// CreateDepartment 创建部门，名称全局唯一
func (s *OrganizationService) CreateDepartment(req *CreateDepartmentRequest) (*model.Department, error) {
	dept := &model.Department{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.deptRepo.Create(dept, map[string]any{"name": dept.Name}); err != nil {
		return nil, err
	}
	return s.deptRepo.GetByID(dept.ID)
}

// GetDepartment 查询单个部门
func (s *OrganizationService) GetDepartment(id string) (*model.Department, error) {
	return s.deptRepo.GetByID(id)
}

// ListDepartments 分页查询部门
func (s *OrganizationService) ListDepartments(opts repository.ListOptions) ([]model.Department, int64, error) {
	depts, err := s.deptRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.deptRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return depts, total, nil
}

// DeleteDepartment 删除部门，仍有员工或部门组时拒绝
func (s *OrganizationService) DeleteDepartment(id string) error {
	return s.deptRepo.Delete(id)
}

// CreateStaff 创建员工，邮箱唯一，所属部门必须存在
func (s *OrganizationService) CreateStaff(req *CreateStaffRequest) (*model.Staff, error) {
	if _, err := s.deptRepo.GetByID(req.DepartmentID); err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}

	staff := &model.Staff{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
	}
	if err := s.staffRepo.Create(staff, map[string]any{"email": staff.Email}); err != nil {
		return nil, err
	}
	return s.staffRepo.GetByID(staff.ID)
}

// GetStaff 查询单个员工
func (s *OrganizationService) GetStaff(id string) (*model.Staff, error) {
	return s.staffRepo.GetByID(id)
}

// ListStaff 分页查询员工
func (s *OrganizationService) ListStaff(opts repository.ListOptions) ([]model.Staff, int64, error) {
	staff, err := s.staffRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.staffRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// ListStaffByDepartment 查询部门下的员工
func (s *OrganizationService) ListStaffByDepartment(departmentID string, opts repository.ListOptions) ([]model.Staff, error) {
	if _, err := s.deptRepo.GetByID(departmentID); err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}
	return s.staffRepo.FindByDepartment(departmentID, opts)
}

// UpdateStaff 更新员工
func (s *OrganizationService) UpdateStaff(id string, req *UpdateStaffRequest) (*model.Staff, error) {
	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.DepartmentID != nil {
		if _, err := s.deptRepo.GetByID(*req.DepartmentID); err != nil {
			return nil, fmt.Errorf("department: %w", err)
		}
		updates["department_id"] = *req.DepartmentID
	}
	return s.staffRepo.Update(id, updates)
}

// DeleteStaff 删除员工
func (s *OrganizationService) DeleteStaff(id string) error {
	return s.staffRepo.Delete(id)
}
