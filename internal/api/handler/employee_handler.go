package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/service"
	pkgerrors "hr-suite/backend/pkg/errors"
	"hr-suite/backend/pkg/response"
)

// EmployeeHandler 员工模块 HTTP 处理器
type EmployeeHandler struct {
	empSvc service.EmployeeService
}

// NewEmployeeHandler 创建 EmployeeHandler
func NewEmployeeHandler(empSvc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{empSvc: empSvc}
}

// ListEmployees 员工列表
// GET /api/v1/employee/employees/
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, total, err := h.empSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreateEmployee 创建员工
// POST /api/v1/employee/employees/
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	emp, err := h.empSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, emp)
}

// GetEmployee 员工详情
// GET /api/v1/employee/employees/:id/
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	emp, err := h.empSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// UpdateEmployee 全量更新员工
// PUT /api/v1/employee/employees/:id/
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	emp, err := h.empSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// PatchEmployee 部分更新员工
// PATCH /api/v1/employee/employees/:id/
func (h *EmployeeHandler) PatchEmployee(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		bindError(c, err)
		return
	}

	var req dto.PatchEmployeeRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		bindError(c, err)
		return
	}
	// 区分显式 null 与字段缺省
	if err := req.CollectNulls(body); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	emp, err := h.empSvc.Patch(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// DeleteEmployee 删除员工
// DELETE /api/v1/employee/employees/:id/
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.empSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleEmployeeError 统一处理员工模块业务错误
func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, "员工不存在")
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, 14002, "邮箱已被使用")
	case errors.Is(err, service.ErrBadgeIDExists):
		response.BadRequest(c, 14003, "工号已被使用")
	case errors.Is(err, service.ErrEmployeeUserIDExists):
		response.BadRequest(c, 14004, "该账号已关联其他员工")
	case errors.Is(err, service.ErrWorkInfoNotFound):
		response.BadRequest(c, 14005, "工作信息不存在")
	case errors.Is(err, service.ErrBankDetailsNotFound):
		response.BadRequest(c, 14006, "银行信息不存在")
	case errors.Is(err, service.ErrInvalidDob):
		response.BadRequest(c, 14007, "出生日期格式应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrEmployeeConflict):
		response.BadRequest(c, 14008, "员工数据违反唯一约束")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 14009, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
