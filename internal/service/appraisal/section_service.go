package appraisal

import (
	"fmt"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// SectionService 考核小节业务逻辑
type SectionService struct {
	sectionRepo *repository.SectionRepository
	cycleRepo   *repository.CycleRepository
}

func NewSectionService(sectionRepo *repository.SectionRepository, cycleRepo *repository.CycleRepository) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		cycleRepo:   cycleRepo,
	}
}

// CreateSectionRequest 创建小节请求
type CreateSectionRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	AppraisalCycleID string `json:"appraisal_cycle_id" binding:"required"`
}

// UpdateSectionRequest 更新小节请求
type UpdateSectionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create 创建小节。所属周期必须存在，节名在周期内唯一。
func (s *SectionService) Create(req *CreateSectionRequest) (*model.AppraisalSection, error) {
	if _, err := s.cycleRepo.GetByID(req.AppraisalCycleID); err != nil {
		return nil, fmt.Errorf("appraisal cycle: %w", err)
	}

	taken, err := s.sectionRepo.NameExistsInCycle(req.AppraisalCycleID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: section name already used in this cycle", repository.ErrConflict)
	}

	section := &model.AppraisalSection{
		Name:             req.Name,
		Description:      req.Description,
		AppraisalCycleID: req.AppraisalCycleID,
	}
	if err := s.sectionRepo.Create(section, nil); err != nil {
		return nil, err
	}
	return s.sectionRepo.GetByID(section.ID)
}

// Get 查询单个小节
func (s *SectionService) Get(id string) (*model.AppraisalSection, error) {
	return s.sectionRepo.GetByID(id)
}

// List 分页查询小节列表
func (s *SectionService) List(opts repository.ListOptions) ([]model.AppraisalSection, int64, error) {
	sections, err := s.sectionRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sectionRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return sections, total, nil
}

// ListByCycle 查询周期下的小节
func (s *SectionService) ListByCycle(cycleID string, opts repository.ListOptions) ([]model.AppraisalSection, error) {
	if _, err := s.cycleRepo.GetByID(cycleID); err != nil {
		return nil, fmt.Errorf("appraisal cycle: %w", err)
	}
	return s.sectionRepo.FindByCycle(cycleID, opts)
}

// Update 更新小节，改名时保持周期内唯一
func (s *SectionService) Update(id string, req *UpdateSectionRequest) (*model.AppraisalSection, error) {
	section, err := s.sectionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != section.Name {
		taken, err := s.sectionRepo.NameExistsInCycle(section.AppraisalCycleID, *req.Name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: section name already used in this cycle", repository.ErrConflict)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	return s.sectionRepo.Update(id, updates)
}

// Delete 删除小节
func (s *SectionService) Delete(id string) error {
	return s.sectionRepo.Delete(id)
}
