package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type CycleHandler struct {
	service *service.CycleService
}

func NewCycleHandler(service *service.CycleService) *CycleHandler {
	return &CycleHandler{service: service}
}

// Create 创建考核周期
func (h *CycleHandler) Create(c *gin.Context) {
	var req appraisalService.CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	cycle, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建考核周期失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(cycle))
}

// Get 查询单个考核周期
func (h *CycleHandler) Get(c *gin.Context) {
	cycle, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询考核周期失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(cycle))
}

// List 分页查询考核周期
func (h *CycleHandler) List(c *gin.Context) {
	opts := parseListOptions(c)
	cycles, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err, "查询考核周期列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  cycles,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// Update 更新考核周期（可整体替换小节）
func (h *CycleHandler) Update(c *gin.Context) {
	var req appraisalService.UpdateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	cycle, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新考核周期失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(cycle))
}

// Delete 删除考核周期
func (h *CycleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除考核周期失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
