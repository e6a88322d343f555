package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type AppraisalHandler struct {
	service *service.AppraisalService
}

func NewAppraisalHandler(service *service.AppraisalService) *AppraisalHandler {
	return &AppraisalHandler{service: service}
}

// Create 创建考核活动
func (h *AppraisalHandler) Create(c *gin.Context) {
	var req appraisalService.CreateAppraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	appraisal, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建考核活动失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(appraisal))
}

// Get 查询单个考核活动
func (h *AppraisalHandler) Get(c *gin.Context) {
	appraisal, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询考核活动失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(appraisal))
}

// List 分页查询考核活动，支持按年份和周期过滤
func (h *AppraisalHandler) List(c *gin.Context) {
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.Error(400, "year 参数必须是整数"))
			return
		}
		appraisals, err := h.service.ListByPeriod(year, c.Query("cycle"))
		if err != nil {
			respondError(c, err, "查询考核活动列表失败")
			return
		}
		c.JSON(http.StatusOK, model.Success(appraisals))
		return
	}

	opts := parseListOptions(c)
	appraisals, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err, "查询考核活动列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  appraisals,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// Update 更新考核活动
func (h *AppraisalHandler) Update(c *gin.Context) {
	var req appraisalService.UpdateAppraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	appraisal, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新考核活动失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(appraisal))
}

// Delete 删除考核活动
func (h *AppraisalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除考核活动失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
