package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/model"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service"
	appraisalService "github.com/Catalyst-OTU/GoGo-Transport-Service/internal/service/appraisal"
)

type OrganizationHandler struct {
	service *service.OrganizationService
}

func NewOrganizationHandler(service *service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// CreateDepartment 创建部门
func (h *OrganizationHandler) CreateDepartment(c *gin.Context) {
	var req appraisalService.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	dept, err := h.service.CreateDepartment(&req)
	if err != nil {
		respondError(c, err, "创建部门失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(dept))
}

// GetDepartment 查询单个部门
func (h *OrganizationHandler) GetDepartment(c *gin.Context) {
	dept, err := h.service.GetDepartment(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询部门失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(dept))
}

// ListDepartments 分页查询部门
func (h *OrganizationHandler) ListDepartments(c *gin.Context) {
	opts := parseListOptions(c)
	depts, total, err := h.service.ListDepartments(opts)
	if err != nil {
		respondError(c, err, "查询部门列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  depts,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// DeleteDepartment 删除部门
func (h *OrganizationHandler) DeleteDepartment(c *gin.Context) {
	if err := h.service.DeleteDepartment(c.Param("id")); err != nil {
		respondError(c, err, "删除部门失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}

// CreateStaff 创建员工
func (h *OrganizationHandler) CreateStaff(c *gin.Context) {
	var req appraisalService.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	staff, err := h.service.CreateStaff(&req)
	if err != nil {
		respondError(c, err, "创建员工失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(staff))
}

// GetStaff 查询单个员工
func (h *OrganizationHandler) GetStaff(c *gin.Context) {
	staff, err := h.service.GetStaff(c.Param("id"))
	if err != nil {
		respondError(c, err, "查询员工失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(staff))
}

// ListStaff 分页查询员工，支持按部门过滤
func (h *OrganizationHandler) ListStaff(c *gin.Context) {
	opts := parseListOptions(c)

	if departmentID := c.Query("department_id"); departmentID != "" {
		staff, err := h.service.ListStaffByDepartment(departmentID, opts)
		if err != nil {
			respondError(c, err, "查询员工列表失败")
			return
		}
		c.JSON(http.StatusOK, model.Success(staff))
		return
	}

	staff, total, err := h.service.ListStaff(opts)
	if err != nil {
		respondError(c, err, "查询员工列表失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(model.PaginatedResponse{
		Data:  staff,
		Total: total,
		Skip:  opts.Skip,
		Limit: opts.Limit,
	}))
}

// UpdateStaff 更新员工
func (h *OrganizationHandler) UpdateStaff(c *gin.Context) {
	var req appraisalService.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.Error(400, err.Error()))
		return
	}

	staff, err := h.service.UpdateStaff(c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "更新员工失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(staff))
}

// DeleteStaff 删除员工
func (h *OrganizationHandler) DeleteStaff(c *gin.Context) {
	if err := h.service.DeleteStaff(c.Param("id")); err != nil {
		respondError(c, err, "删除员工失败")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"message": "删除成功"}))
}
