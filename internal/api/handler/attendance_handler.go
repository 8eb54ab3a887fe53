package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/service"
	"hr-suite/backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc  service.AttendanceService
	permSvc service.PermissionService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService, permSvc service.PermissionService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc, permSvc: permSvc}
}

// PermissionCheck 当前用户的考勤能力
// GET /api/v1/attendance/permission-check/
func (h *AttendanceHandler) PermissionCheck(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	perms, err := h.permSvc.AttendancePermissions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, 15001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, perms)
}

// ListAttendance 考勤列表
// GET /api/v1/attendance/attendance/
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	list, total, err := h.attSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ExportAttendance 导出考勤
// GET /api/v1/attendance/export/?format=xlsx|ics&from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *AttendanceHandler) ExportAttendance(c *gin.Context) {
	var req dto.AttendanceExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	file, err := h.attSvc.Export(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportRangeInvalid):
			response.BadRequest(c, 16001, "导出日期范围无效")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Content.Bytes())
}
