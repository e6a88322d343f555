package appraisal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// CycleService 考核周期业务逻辑
type CycleService struct {
	cycleRepo   *repository.CycleRepository
	sectionRepo *repository.SectionRepository
}

func NewCycleService(cycleRepo *repository.CycleRepository, sectionRepo *repository.SectionRepository) *CycleService {
	return &CycleService{
		cycleRepo:   cycleRepo,
		sectionRepo: sectionRepo,
	}
}

// CreateCycleRequest 创建周期请求
type CreateCycleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Year        string `json:"year"`
}

// SectionPayload 周期更新时随周期一起提交的小节定义
type SectionPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCycleRequest 更新周期请求；Sections 非 nil 时整体替换周期下的小节
type UpdateCycleRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Sections    []SectionPayload `json:"sections"`
}

// Create 创建考核周期。年份只能是当前年份，周期名称全局唯一。
func (s *CycleService) Create(req *CreateCycleRequest) (*model.AppraisalCycle, error) {
	currentYear := strconv.Itoa(time.Now().Year())
	if req.Year != "" && req.Year != currentYear {
		return nil, fmt.Errorf("%w: got %s", ErrYearMismatch, req.Year)
	}

	cycle := &model.AppraisalCycle{
		Name:        req.Name,
		Description: req.Description,
		Year:        currentYear,
	}

	if err := s.cycleRepo.Create(cycle, map[string]any{"name": cycle.Name}); err != nil {
		return nil, err
	}
	return s.cycleRepo.GetByID(cycle.ID)
}

// Get 查询单个周期（带小节）
func (s *CycleService) Get(id string) (*model.AppraisalCycle, error) {
	return s.cycleRepo.GetByID(id)
}

// List 分页查询周期列表
func (s *CycleService) List(opts repository.ListOptions) ([]model.AppraisalCycle, int64, error) {
	cycles, err := s.cycleRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cycleRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return cycles, total, nil
}

// Update 更新周期。请求中带 Sections 时整体替换周期下的小节：
// 先检查新小节名单内无重复，再删除旧小节并按顺序创建新小节。
func (s *CycleService) Update(id string, req *UpdateCycleRequest) (*model.AppraisalCycle, error) {
	if _, err := s.cycleRepo.GetByID(id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		// 改名时检查是否与其他周期冲突
		existing, err := s.cycleRepo.FindByName(*req.Name)
		if err == nil && existing.ID != id {
			return nil, fmt.Errorf("%w: cycle name already in use", repository.ErrConflict)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.Sections == nil {
		return s.cycleRepo.Update(id, updates)
	}

	// 新小节名单内部去重检查
	seen := make(map[string]bool, len(req.Sections))
	sections := make([]model.AppraisalSection, 0, len(req.Sections))
	for _, payload := range req.Sections {
		if seen[payload.Name] {
			return nil, fmt.Errorf("%w: duplicate section name %q", repository.ErrConflict, payload.Name)
		}
		seen[payload.Name] = true
		sections = append(sections, model.AppraisalSection{
			Name:        payload.Name,
			Description: payload.Description,
		})
	}

	if err := s.cycleRepo.ReplaceSections(id, updates, sections); err != nil {
		return nil, err
	}
	return s.cycleRepo.GetByID(id)
}

// Delete 删除周期，周期下仍有小节时返回冲突
func (s *CycleService) Delete(id string) error {
	return s.cycleRepo.Delete(id)
}
