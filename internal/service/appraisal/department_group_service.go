package appraisal

import (
	"fmt"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// DepartmentGroupService 部门组业务逻辑
type DepartmentGroupService struct {
	groupRepo *repository.DepartmentGroupRepository
	deptRepo  *repository.DepartmentRepository
	inputRepo *repository.InputRepository
}

func NewDepartmentGroupService(
	groupRepo *repository.DepartmentGroupRepository,
	deptRepo *repository.DepartmentRepository,
	inputRepo *repository.InputRepository,
) *DepartmentGroupService {
	return &DepartmentGroupService{
		groupRepo: groupRepo,
		deptRepo:  deptRepo,
		inputRepo: inputRepo,
	}
}

// CreateDepartmentGroupRequest 创建部门组请求
type CreateDepartmentGroupRequest struct {
	Name         string `json:"name" binding:"required"`
	DepartmentID string `json:"department_id" binding:"required"`
}

// UpdateDepartmentGroupRequest 更新部门组请求
type UpdateDepartmentGroupRequest struct {
	Name *string `json:"name"`
}

// Create 创建部门组，所属部门必须存在，组名在部门内唯一
func (s *DepartmentGroupService) Create(req *CreateDepartmentGroupRequest) (*model.DepartmentGroup, error) {
	if _, err := s.deptRepo.GetByID(req.DepartmentID); err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}

	taken, err := s.groupRepo.NameExistsInDepartment(req.DepartmentID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: group name already used in this department", repository.ErrConflict)
	}

	group := &model.DepartmentGroup{
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
	}
	if err := s.groupRepo.Create(group, nil); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(group.ID)
}

// Get 查询单个部门组
func (s *DepartmentGroupService) Get(id string) (*model.DepartmentGroup, error) {
	return s.groupRepo.GetByID(id)
}

// List 分页查询部门组
func (s *DepartmentGroupService) List(opts repository.ListOptions) ([]model.DepartmentGroup, int64, error) {
	groups, err := s.groupRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.groupRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListByDepartment 查询部门下的部门组
func (s *DepartmentGroupService) ListByDepartment(departmentID string) ([]model.DepartmentGroup, error) {
	if _, err := s.deptRepo.GetByID(departmentID); err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}
	return s.groupRepo.FindByDepartment(departmentID)
}

// Update 更新部门组，改名时保持部门内唯一
func (s *DepartmentGroupService) Update(id string, req *UpdateDepartmentGroupRequest) (*model.DepartmentGroup, error) {
	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != group.Name {
		taken, err := s.groupRepo.NameExistsInDepartment(group.DepartmentID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: group name already used in this department", repository.ErrConflict)
		}
		updates["name"] = *req.Name
	}

	return s.groupRepo.Update(id, updates)
}

// Delete 删除部门组，仍有表单投放到该组时拒绝
func (s *DepartmentGroupService) Delete(id string) error {
	count, err := s.inputRepo.CountByDepartmentGroup(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: group is still referenced by %d appraisal input(s)", repository.ErrConflict, count)
	}
	return s.groupRepo.Delete(id)
}
