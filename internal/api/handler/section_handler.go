package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type SectionHandler struct {
	service *service.SectionService
}

func NewSectionHandler(service *service.SectionService) *SectionHandler {
	return &SectionHandler{service: service}
}

// Create 创建考核小节
func (h *SectionHandler) Create(c *gin.Context) {
	var req appraisalService.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	section, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建考核小节失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(section))
}

// Get 查询单个考核小节
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询考核小节失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(section))
}

// List 分页查询考核小节，支持按周期过滤
func (h *SectionHandler) List(c *gin.Context) {
	opts := parseListOptions(c)

	if cycleID := c.Query("cycle_id"); cycleID != "" {
		sections, err := h.service.ListByCycle(cycleID, opts)
		if err != nil {
			respondError(c, err, "查询考核小节列表失败")
			return
		}
		c.JSON(http.StatusOK, model.Success(sections))
		return
	}

	sections, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err, "查询考核小节列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  sections,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// Update 更新考核小节
func (h *SectionHandler) Update(c *gin.Context) {
	var req appraisalService.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	section, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新考核小节失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(section))
}

// Delete 删除考核小节
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除考核小节失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
