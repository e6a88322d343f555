package appraisal

import (
	"fmt"
	"time"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
)

// AppraisalService 考核活动业务逻辑
type AppraisalService struct {
	appraisalRepo *repository.AppraisalRepository
}

func NewAppraisalService(appraisalRepo *repository.AppraisalRepository) *AppraisalService {
	return &AppraisalService{appraisalRepo: appraisalRepo}
}

// CreateAppraisalRequest 创建考核活动请求
type CreateAppraisalRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Year        int               `json:"year"`
	Cycle       string            `json:"cycle"`
	CycleID     *string           `json:"cycle_id"`
	FormFields  []model.FormGroup `json:"form_fields"`
	PeriodFrom  *time.Time        `json:"period_from"`
	PeriodTo    *time.Time        `json:"period_to"`
}

// UpdateAppraisalRequest 更新考核活动请求
type UpdateAppraisalRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	FormFields  []model.FormGroup `json:"form_fields"`
	PeriodFrom  *time.Time        `json:"period_from"`
	PeriodTo    *time.Time        `json:"period_to"`
}

// Create 创建考核活动，同年同周期内名称唯一，年份缺省取当前年份
func (s *AppraisalService) Create(req *CreateAppraisalRequest) (*model.Appraisal, error) {
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	taken, err := s.appraisalRepo.NameExistsInPeriod(req.Name, year, req.Cycle, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: appraisal name already used in this period", repository.ErrConflict)
	}

	appraisal := &model.Appraisal{
		Name:        req.Name,
		Description: req.Description,
		Year:        year,
		Cycle:       req.Cycle,
		CycleID:     req.CycleID,
		PeriodFrom:  req.PeriodFrom,
		PeriodTo:    req.PeriodTo,
	}
	if req.FormFields != nil {
		formFields, err := model.MarshalFormGroups(req.FormFields)
		if err != nil {
			return nil, err
		}
		appraisal.FormFields = formFields
	}

	if err := s.appraisalRepo.Create(appraisal, nil); err != nil {
		return nil, err
	}
	return s.appraisalRepo.GetByID(appraisal.ID)
}

// Get 查询单个考核活动
func (s *AppraisalService) Get(id string) (*model.Appraisal, error) {
	return s.appraisalRepo.GetByID(id)
}

// List 分页查询考核活动
func (s *AppraisalService) List(opts repository.ListOptions) ([]model.Appraisal, int64, error) {
	appraisals, err := s.appraisalRepo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.appraisalRepo.Count()
	if err != nil {
		return nil, 0, err
	}
	return appraisals, total, nil
}

// ListByPeriod 查询某年某周期下的考核活动
func (s *AppraisalService) ListByPeriod(year int, cycle string) ([]model.Appraisal, error) {
	return s.appraisalRepo.FindByYearAndCycle(year, cycle)
}

// Update 更新考核活动
func (s *AppraisalService) Update(id string, req *UpdateAppraisalRequest) (*model.Appraisal, error) {
	appraisal, err := s.appraisalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil && *req.Name != appraisal.Name {
		taken, err := s.appraisalRepo.NameExistsInPeriod(*req.Name, appraisal.Year, appraisal.Cycle, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: appraisal name already used in this period", repository.ErrConflict)
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PeriodFrom != nil {
		updates["period_from"] = *req.PeriodFrom
	}
	if req.PeriodTo != nil {
		updates["period_to"] = *req.PeriodTo
	}
	if req.FormFields != nil {
		formFields, err := model.MarshalFormGroups(req.FormFields)
		if err != nil {
			return nil, err
		}
		updates["form_fields"] = formFields
	}

	return s.appraisalRepo.Update(id, updates)
}

// Delete 删除考核活动
func (s *AppraisalService) Delete(id string) error {
	return s.appraisalRepo.Delete(id)
}
