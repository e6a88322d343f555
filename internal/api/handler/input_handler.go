package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type InputHandler struct {
	service *service.InputService
}

func NewInputHandler(service *service.InputService) *InputHandler {
	return &InputHandler{service: service}
}

// Create 创建考核表单
func (h *InputHandler) Create(c *gin.Context) {
	var req appraisalService.CreateInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	input, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建考核表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(input))
}

// Get 查询单个考核表单
func (h *InputHandler) Get(c *gin.Context) {
	input, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询考核表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(input))
}

// List 分页查询考核表单（带小节名称）。带 search 参数时按标题模糊查询。
func (h *InputHandler) List(c *gin.Context) {
	opts := parseListOptions(c)

	if pattern := c.Query("search"); pattern != "" {
		inputs, err := h.service.Search(pattern, opts)
		if err != nil {
			respondError(c, err, "查询考核表单列表失败")
			return
		}
		c.JSON(http.StatusOK, model.Success(inputs))
		return
	}

	inputs, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err, "查询考核表单列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  inputs,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// GetBySection 查询挂在某个小节下的考核表单
func (h *InputHandler) GetBySection(c *gin.Context) {
	input, err := h.service.GetBySection(c.Param("section_id"))
	if err != nil {
		respondError(c, err, "查询小节表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(input))
}

// ListForStaff 查询员工可见的考核表单
func (h *InputHandler) ListForStaff(c *gin.Context) {
	inputs, err := h.service.ListForStaff(c.Param("staff_id"))
	if err != nil {
		respondError(c, err, "查询员工可见表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(inputs))
}

// Update 更新考核表单
func (h *InputHandler) Update(c *gin.Context) {
	var req appraisalService.UpdateInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	input, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新考核表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(input))
}

// Delete 删除考核表单
func (h *InputHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除考核表单失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
