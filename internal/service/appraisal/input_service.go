package appraisal

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// InputService 考核表单业务逻辑
type InputService struct {
	inputRepo      *repository.InputRepository
	sectionRepo    *repository.SectionRepository
	deptGroupRepo  *repository.DepartmentGroupRepository
	staffRepo      *repository.StaffRepository
	submissionRepo *repository.SubmissionRepository
}

func NewInputService(
	inputRepo *repository.InputRepository,
	sectionRepo *repository.SectionRepository,
	deptGroupRepo *repository.DepartmentGroupRepository,
	staffRepo *repository.StaffRepository,
	submissionRepo *repository.SubmissionRepository,
) *InputService {
	return &InputService{
		inputRepo:      inputRepo,
		sectionRepo:    sectionRepo,
		deptGroupRepo:  deptGroupRepo,
		staffRepo:      staffRepo,
		submissionRepo: submissionRepo,
	}
}

// CreateInputRequest 创建表单请求
type CreateInputRequest struct {
	Title              string            `json:"title" binding:"required"`
	Description        string            `json:"description"`
	AppraisalSectionID string            `json:"appraisal_section_id" binding:"required"`
	DepartmentGroupID  *string           `json:"department_group_id"`
	AppraisalID        *string           `json:"appraisal_id"`
	FormGroups         []model.FormGroup `json:"form_fields"`
	DepartmentIDs      []string          `json:"department_ids"`
	IsGlobal           bool              `json:"is_global"`
}

// UpdateInputRequest 更新表单请求
type UpdateInputRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	FormGroups  []model.FormGroup `json:"form_fields"`
	IsActive    *bool             `json:"is_active"`
}

// Create 创建表单。一个小节只允许挂一份表单。
func (s *InputService) Create(req *CreateInputRequest) (*model.AppraisalInput, error) {
	if _, err := s.sectionRepo.GetByID(req.AppraisalSectionID); err != nil {
		return nil, fmt.Errorf("appraisal section: %w", err)
	}

	exists, err := s.inputRepo.ExistsForSection(req.AppraisalSectionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: section already has an appraisal input", repository.ErrConflict)
	}

	if req.DepartmentGroupID != nil && *req.DepartmentGroupID != "" {
		if _, err := s.deptGroupRepo.GetByID(*req.DepartmentGroupID); err != nil {
			return nil, fmt.Errorf("department group: %w", err)
		}
	}

	formFields, err := model.MarshalFormGroups(req.FormGroups)
	if err != nil {
		return nil, err
	}

	input := &model.AppraisalInput{
		Title:              req.Title,
		Description:        req.Description,
		AppraisalSectionID: req.AppraisalSectionID,
		DepartmentGroupID:  req.DepartmentGroupID,
		AppraisalID:        req.AppraisalID,
		FormFields:         formFields,
		IsGlobal:           req.IsGlobal,
		IsActive:           true,
	}
	if len(req.DepartmentIDs) > 0 {
		raw, err := marshalStringList(req.DepartmentIDs)
		if err != nil {
			return nil, err
		}
		input.DepartmentIDs = raw
	}

	if err := s.inputRepo.Create(input, nil); err != nil {
		return nil, err
	}
	return s.inputRepo.GetByID(input.ID)
}

// Get 查询单个表单
func (s *InputService) Get(id string) (*model.AppraisalInput, error) {
	return s.inputRepo.GetByID(id)
}

// GetBySection 查询挂在某个小节下的表单
func (s *InputService) GetBySection(sectionID string) (*model.AppraisalInput, error) {
	return s.inputRepo.FindBySection(sectionID)
}

// Search 按标题模糊查询表单
func (s *InputService) Search(pattern string, opts repository.ListOptions) ([]model.AppraisalInput, error) {
	return s.inputRepo.SearchByPattern("title", pattern, opts)
}

// EnrichedInput 表单及其关联数据的列表项
type EnrichedInput struct {
	model.AppraisalInput
	SectionName       string `json:"section_name,omitempty"`
	DepartmentGroupID string `json:"resolved_department_group_id,omitempty"`
}

// List 分页查询表单列表，小节名称通过批量查询一次性填充
func (s *InputService) List(opts repository.ListOptions) ([]EnrichedInput, int64, error) {
	inputs, err := s.inputRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.inputRepo.Count()
	if err != nil {
		return nil, 0, err
	}

	// 批量取小节，缺失的ID静默跳过
	sectionIDs := make([]string, 0, len(inputs))
	for _, input := range inputs {
		sectionIDs = append(sectionIDs, input.AppraisalSectionID)
	}
	sections, err := s.sectionRepo.GetAllByIDs(sectionIDs)
	if err != nil {
		return nil, 0, err
	}

	enriched := make([]EnrichedInput, 0, len(inputs))
	for _, input := range inputs {
		item := EnrichedInput{AppraisalInput: input}
		if section, ok := sections[input.AppraisalSectionID]; ok {
			item.SectionName = section.Name
		}
		if input.DepartmentGroupID != nil {
			item.DepartmentGroupID = *input.DepartmentGroupID
		}
		enriched = append(enriched, item)
	}
	return enriched, total, nil
}

// ListForStaff 查询员工可见的表单：按员工所属部门过滤投放范围
func (s *InputService) ListForStaff(staffID string) ([]model.AppraisalInput, error) {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, fmt.Errorf("staff: %w", err)
	}
	return s.inputRepo.FindVisibleToDepartment(staff.DepartmentID)
}

// Update 更新表单
func (s *InputService) Update(id string, req *UpdateInputRequest) (*model.AppraisalInput, error) {
	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.FormGroups != nil {
		formFields, err := model.MarshalFormGroups(req.FormGroups)
		if err != nil {
			return nil, err
		}
		updates["form_fields"] = formFields
	}
	return s.inputRepo.Update(id, updates)
}

// Delete 删除表单，仍有作答记录引用时拒绝
func (s *InputService) Delete(id string) error {
	count, err := s.submissionRepo.CountByInput(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: input still has %d submission(s)", repository.ErrConflict, count)
	}
	return s.inputRepo.Delete(id)
}

func marshalStringList(values []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
