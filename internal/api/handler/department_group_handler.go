package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type DepartmentGroupHandler struct {
	service *service.DepartmentGroupService
}

func NewDepartmentGroupHandler(service *service.DepartmentGroupService) *DepartmentGroupHandler {
	return &DepartmentGroupHandler{service: service}
}

// Create 创建部门组
func (h *DepartmentGroupHandler) Create(c *gin.Context) {
	var req appraisalService.CreateDepartmentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	group, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err, "创建部门组失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(group))
}

// Get 查询单个部门组
func (h *DepartmentGroupHandler) Get(c *gin.Context) {
	group, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询部门组失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(group))
}

// List 分页查询部门组，支持按部门过滤
func (h *DepartmentGroupHandler) List(c *gin.Context) {
	if departmentID := c.Query("department_id"); departmentID != "" {
		groups, err := h.service.ListByDepartment(departmentID)
		if err != nil {
			respondError(c, err, "查询部门组列表失败")
			return
		}
		c.JSON(http.StatusOK, model.Success(groups))
		return
	}

	opts := parseListOptions(c)
	groups, total, err := h.service.List(opts)
	if err != nil {
		respondError(c, err, "查询部门组列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  groups,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// Update 更新部门组
func (h *DepartmentGroupHandler) Update(c *gin.Context) {
	var req appraisalService.UpdateDepartmentGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	group, err := h.service.Update(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新部门组失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(group))
}

// Delete 删除部门组
func (h *DepartmentGroupHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err, "删除部门组失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
