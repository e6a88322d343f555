package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/repository"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type SubmissionHandler struct {
	service *service.SubmissionService
}

func NewSubmissionHandler(service *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Create 创建作答记录
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req appraisalService.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	submission, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建作答记录失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// Get 查询单条作答记录
func (h *SubmissionHandler) Get(c *gin.Context) {
	submission, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询作答记录失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// parseSubmissionFilter 从 query 参数解析作答记录的过滤条件
func parseSubmissionFilter(c *gin.Context) repository.SubmissionFilter {
	filter := repository.SubmissionFilter{
		AppraisalID:       c.Query("appraisal_id"),
		AppraisalInputID:  c.Query("appraisal_input_id"),
		StaffID:           c.Query("staff_id"),
		DepartmentID:      c.Query("department_id"),
		DepartmentGroupID: c.Query("department_group_id"),
		Cycle:             c.Query("cycle"),
	}
	if v := c.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.Year = year
		}
	}
	if v := c.Query("submitted"); v != "" {
		submitted := v == "true"
		filter.Submitted = &submitted
	}
	if v := c.Query("completed"); v != "" {
		completed := v == "true"
		filter.Completed = &completed
	}
	return filter
}

// List 按过滤条件分页查询作答记录
func (h *SubmissionHandler) List(c *gin.Context) {
	opts := parseListOptions(c)
	filter := parseSubmissionFilter(c)

	submissions, total, err := h.service.List(filter, opts)
	if err != nil {
		respondError(c, err, "查询作答记录列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  submissions,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// UpdateAnswerRequest 单答案更新请求
type UpdateAnswerRequest struct {
	GroupName string `json:"group_name" binding:"required"`
	FieldName string `json:"field_name" binding:"required"`
	Answer    any    `json:"answer"`
}

// UpdateAnswer 严格路径：更新已存在的单个答案
func (h *SubmissionHandler) UpdateAnswer(c *gin.Context) {
	var req UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	submission, err := h.service.UpdateAnswer(c.Param("id"), req.GroupName, req.FieldName, req.Answer)
	if err != nil {
		respondError(c, err, "更新答案失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// UpsertAnswers 宽松路径：批量写入答案，缺失的组和字段会被创建
func (h *SubmissionHandler) UpsertAnswers(c *gin.Context) {
	var answers map[string]any
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	submission, err := h.service.UpsertAnswers(c.Param("id"), answers)
	if err != nil {
		respondError(c, err, "批量更新答案失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// Submit 标记提交
func (h *SubmissionHandler) Submit(c *gin.Context) {
	submission, err := h.service.Submit(c.Param("id"))
	if err != nil {
		respondError(c, err, "提交作答记录失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// Complete 标记完成，此后答案不可修改
func (h *SubmissionHandler) Complete(c *gin.Context) {
	submission, err := h.service.Complete(c.Param("id"))
	if err != nil {
		respondError(c, err, "完成作答记录失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(submission))
}

// Delete 删除作答记录
func (h *SubmissionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除作答记录失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}

// SummaryResults 按过滤条件查询答案汇总，结果以员工 ID 为键
func (h *SubmissionHandler) SummaryResults(c *gin.Context) {
	results, err := h.service.SummaryResults(parseSubmissionFilter(c))
	if err != nil {
		respondError(c, err, "查询答案汇总失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(results))
}

// Summary 查询员工的答案汇总
func (h *SubmissionHandler) Summary(c *gin.Context) {
	summaries, err := h.service.SummaryByStaff(c.Request.Context(), c.Param("staff_id"))
	if err != nil {
		respondError(c, err, "查询答案汇总失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(summaries))
}
