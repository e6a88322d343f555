package appraisal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"gorm.io/datatypes"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/logger"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/metrics"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/redis"
)

// 乐观锁冲突时的最大重试次数
const maxAnswerUpdateRetries = 3

// SubmissionService 作答记录业务逻辑：答案的局部更新和汇总聚合
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	inputRepo      *repository.InputRepository
	staffRepo      *repository.StaffRepository
	summaryTTL     time.Duration
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	inputRepo *repository.InputRepository,
	staffRepo *repository.StaffRepository,
	summaryTTLSeconds int,
) *SubmissionService {
	if summaryTTLSeconds <= 0 {
		summaryTTLSeconds = 300
	}
	return &SubmissionService{
		submissionRepo: submissionRepo,
		inputRepo:      inputRepo,
		staffRepo:      staffRepo,
		summaryTTL:     time.Duration(summaryTTLSeconds) * time.Second,
	}
}

// CreateSubmissionRequest 创建作答记录请求
type CreateSubmissionRequest struct {
	AppraisalInputID string         `json:"appraisal_input_id" binding:"required"`
	AppraisalID      string         `json:"appraisal_id" binding:"required"`
	StaffID          string         `json:"staff_id" binding:"required"`
	Data             map[string]any `json:"data"`
}

// Create 创建作答记录，同一员工对同一表单只允许一条记录
func (s *SubmissionService) Create(req *CreateSubmissionRequest) (*model.AppraisalSubmission, error) {
	if _, err := s.inputRepo.GetByID(req.AppraisalInputID); err != nil {
		return nil, fmt.Errorf("appraisal input: %w", err)
	}
	if _, err := s.staffRepo.GetByID(req.StaffID); err != nil {
		return nil, fmt.Errorf("staff: %w", err)
	}

	if _, err := s.submissionRepo.FindByStaffAndInput(req.StaffID, req.AppraisalInputID); err == nil {
		return nil, fmt.Errorf("%w: staff already has a submission for this input", repository.ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	submission := &model.AppraisalSubmission{
		AppraisalInputID: req.AppraisalInputID,
		AppraisalID:      req.AppraisalID,
		StaffID:          req.StaffID,
		Data:             datatypes.JSONMap(req.Data),
		StartedAt:        &now,
	}
	if err := s.submissionRepo.Create(submission, nil); err != nil {
		return nil, err
	}
	return s.submissionRepo.GetByID(submission.ID)
}

// Get 查询单条作答记录
func (s *SubmissionService) Get(id string) (*model.AppraisalSubmission, error) {
	return s.submissionRepo.GetByID(id)
}

// List 按过滤条件分页查询作答记录
func (s *SubmissionService) List(filter repository.SubmissionFilter, opts repository.ListOptions) ([]model.AppraisalSubmission, int64, error) {
	return s.submissionRepo.FindFiltered(filter, opts)
}

// UpdateAnswer 严格路径的单答案更新：组和字段必须已存在于答案文档中，
// 已完成的记录拒绝修改。并发冲突时重读重试。
func (s *SubmissionService) UpdateAnswer(id, groupName, fieldName string, answer any) (*model.AppraisalSubmission, error) {
	for attempt := 0; attempt < maxAnswerUpdateRetries; attempt++ {
		submission, err := s.submissionRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if submission.Completed {
			return nil, ErrSubmissionClosed
		}

		group, ok := submission.Data[groupName].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrGroupNotFound, groupName)
		}
		if _, ok := group[fieldName]; !ok {
			return nil, fmt.Errorf("%w: %q in group %q", ErrFieldNotFound, fieldName, groupName)
		}

		data := cloneData(submission.Data)
		data[groupName].(map[string]any)[fieldName] = answer

		err = s.submissionRepo.UpdateDataCAS(id, submission.Version, data, nil)
		if err == nil {
			metrics.SubmissionAnswerUpdatesTotal.WithLabelValues("single", "ok").Inc()
			s.invalidateSummary(submission.StaffID)
			return s.submissionRepo.GetByID(id)
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.SubmissionVersionConflictsTotal.Inc()
			logger.Warnf("Answer update conflict on submission %s, retrying (%d/%d)", id, attempt+1, maxAnswerUpdateRetries)
			continue
		}
		metrics.SubmissionAnswerUpdatesTotal.WithLabelValues("single", "error").Inc()
		return nil, err
	}
	return nil, repository.ErrVersionConflict
}

// UpsertAnswers 宽松路径的批量答案更新：不存在的组和字段会被创建，
// 已有的字段被覆盖。载荷必须是 组名 -> 字段名 -> 答案 的两层结构。
func (s *SubmissionService) UpsertAnswers(id string, answers map[string]any) (*model.AppraisalSubmission, error) {
	// 先校验载荷结构，再进入读改写循环
	normalized := make(map[string]map[string]any, len(answers))
	for groupName, rawFields := range answers {
		fields, ok := rawFields.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: group %q must map field names to answers", ErrInvalidAnswerData, groupName)
		}
		normalized[groupName] = fields
	}

	for attempt := 0; attempt < maxAnswerUpdateRetries; attempt++ {
		submission, err := s.submissionRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if submission.Completed {
			return nil, ErrSubmissionClosed
		}

		data := cloneData(submission.Data)
		for groupName, fields := range normalized {
			group, ok := data[groupName].(map[string]any)
			if !ok {
				group = make(map[string]any, len(fields))
				data[groupName] = group
			}
			for fieldName, answer := range fields {
				group[fieldName] = answer
			}
		}

		err = s.submissionRepo.UpdateDataCAS(id, submission.Version, data, nil)
		if err == nil {
			metrics.SubmissionAnswerUpdatesTotal.WithLabelValues("bulk", "ok").Inc()
			s.invalidateSummary(submission.StaffID)
			return s.submissionRepo.GetByID(id)
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.SubmissionVersionConflictsTotal.Inc()
			logger.Warnf("Bulk answer update conflict on submission %s, retrying (%d/%d)", id, attempt+1, maxAnswerUpdateRetries)
			continue
		}
		metrics.SubmissionAnswerUpdatesTotal.WithLabelValues("bulk", "error").Inc()
		return nil, err
	}
	return nil, repository.ErrVersionConflict
}

// Submit 标记提交
func (s *SubmissionService) Submit(id string) (*model.AppraisalSubmission, error) {
	submission, err := s.submissionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if submission.Completed {
		return nil, ErrSubmissionClosed
	}
	return s.submissionRepo.SetFlags(id, map[string]any{"submitted": true})
}

// Complete 标记完成，此后答案文档锁死
func (s *SubmissionService) Complete(id string) (*model.AppraisalSubmission, error) {
	if _, err := s.submissionRepo.GetByID(id); err != nil {
		return nil, err
	}
	submission, err := s.submissionRepo.SetFlags(id, map[string]any{"submitted": true, "completed": true})
	if err != nil {
		return nil, err
	}
	s.invalidateSummary(submission.StaffID)
	return submission, nil
}

// Delete 删除作答记录
func (s *SubmissionService) Delete(id string) error {
	submission, err := s.submissionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.submissionRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateSummary(submission.StaffID)
	return nil
}

// SummaryByStaff 汇总员工的所有作答：按表单模板展开每个组的每个字段，
// 已作答的字段带答案，未作答的字段答案为 null。结果在 Redis 可用时缓存。
func (s *SubmissionService) SummaryByStaff(ctx context.Context, staffID string) ([]model.StaffSummary, error) {
	if _, err := s.staffRepo.GetByID(staffID); err != nil {
		return nil, fmt.Errorf("staff: %w", err)
	}

	cacheKey := summaryCacheKey(staffID)
	if redis.IsEnabled() {
		cached, err := redis.GetClient().Get(ctx, cacheKey).Result()
		if err == nil {
			var summaries []model.StaffSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				metrics.SummaryCacheHitsTotal.WithLabelValues("hit").Inc()
				return summaries, nil
			}
		} else if !errors.Is(err, goredis.Nil) {
			logger.Warnf("Summary cache read failed for staff %s: %v", staffID, err)
		}
		metrics.SummaryCacheHitsTotal.WithLabelValues("miss").Inc()
	} else {
		metrics.SummaryCacheHitsTotal.WithLabelValues("bypass").Inc()
	}

	submissions, err := s.submissionRepo.FindByStaff(staffID)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.StaffSummary, 0, len(submissions))
	for i := range submissions {
		summaries = append(summaries, projectSubmission(&submissions[i]))
	}

	if redis.IsEnabled() {
		payload, err := json.Marshal(summaries)
		if err == nil {
			if err := redis.GetClient().Set(ctx, cacheKey, payload, s.summaryTTL).Err(); err != nil {
				logger.Warnf("Summary cache write failed for staff %s: %v", staffID, err)
			}
		}
	}
	return summaries, nil
}

// SummaryResults 按过滤条件汇总作答，结果以员工 ID 为键。
// 每名员工的多条作答合并到同一个条目里，同名组的字段条目追加；
// 跨多个考核合并时条目不再标注单一考核 ID。
func (s *SubmissionService) SummaryResults(filter repository.SubmissionFilter) (map[string]model.StaffSummary, error) {
	submissions, err := s.submissionRepo.FindAllFiltered(filter)
	if err != nil {
		return nil, err
	}

	results := make(map[string]model.StaffSummary)
	for i := range submissions {
		projected := projectSubmission(&submissions[i])

		merged, ok := results[projected.StaffID]
		if !ok {
			results[projected.StaffID] = projected
			continue
		}
		for groupName, entries := range projected.Groups {
			merged.Groups[groupName] = append(merged.Groups[groupName], entries...)
		}
		if merged.AppraisalID != projected.AppraisalID {
			merged.AppraisalID = ""
		}
		results[projected.StaffID] = merged
	}
	return results, nil
}

// projectSubmission 按表单模板展开一条作答记录：
// 模板里的每个字段都出现在结果里，未作答的字段答案为 null
func projectSubmission(submission *model.AppraisalSubmission) model.StaffSummary {
	summary := model.StaffSummary{
		AppraisalID: submission.AppraisalID,
		StaffID:     submission.StaffID,
		Groups:      map[string][]model.SummaryEntry{},
	}

	if submission.AppraisalInput == nil {
		return summary
	}
	groups, err := submission.AppraisalInput.Template()
	if err != nil {
		logger.Warnf("Skipping malformed template on input %s: %v", submission.AppraisalInputID, err)
		return summary
	}

	for _, group := range groups {
		entries := make([]model.SummaryEntry, 0, len(group.Fields))
		for _, field := range group.Fields {
			entry := model.SummaryEntry{
				FieldName: field.FieldName,
				FieldText: field.FieldText,
			}
			if answer, ok := submission.Answer(group.GroupName, field.FieldName); ok {
				entry.Answer = answer
			}
			entries = append(entries, entry)
		}
		summary.Groups[group.GroupName] = entries
	}
	return summary
}

// invalidateSummary 答案变更后使员工的汇总缓存失效
func (s *SubmissionService) invalidateSummary(staffID string) {
	if !redis.IsEnabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redis.GetClient().Del(ctx, summaryCacheKey(staffID)).Err(); err != nil {
		logger.Warnf("Summary cache invalidation failed for staff %s: %v", staffID, err)
	}
}

func summaryCacheKey(staffID string) string {
	return "appraisal:summary:" + staffID
}

// cloneData 深拷贝答案文档的组层，避免读改写期间共享内层 map
func cloneData(data datatypes.JSONMap) datatypes.JSONMap {
	clone := make(datatypes.JSONMap, len(data))
	for groupName, value := range data {
		if group, ok := value.(map[string]any); ok {
			copied := make(map[string]any, len(group))
			for fieldName, answer := range group {
				copied[fieldName] = answer
			}
			clone[groupName] = copied
			continue
		}
		clone[groupName] = value
	}
	return clone
}
