package dto

// ── 考勤模块 DTO ──

// AttendancePermissions 考勤权限自检结果：能力名 → 是否具备
type AttendancePermissions map[string]bool

// AttendanceListRequest 考勤列表查询参数
type AttendanceListRequest struct {
	PaginationRequest
	EmployeeID          *uint  `form:"employee_id"          binding:"omitempty,min=1"`
	AttendanceDate      string `form:"attendance_date"      binding:"omitempty,datetime=2006-01-02"`
	AttendanceValidated *bool  `form:"attendance_validated"`
}

// AttendanceExportRequest 考勤导出参数，from/to 为闭区间
type AttendanceExportRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=xlsx ics"`
	From   string `form:"from"   binding:"required,datetime=2006-01-02"`
	To     string `form:"to"     binding:"required,datetime=2006-01-02"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID                   uint    `json:"id"`
	EmployeeID           uint    `json:"employee_id"`
	EmployeeFirstName    string  `json:"employee_first_name"`
	EmployeeLastName     *string `json:"employee_last_name"`
	AttendanceDate       string  `json:"attendance_date"`
	AttendanceClockIn    string  `json:"attendance_clock_in"`
	AttendanceClockOut   *string `json:"attendance_clock_out"`
	AttendanceWorkedHour string  `json:"attendance_worked_hour"`
	MinimumHour          string  `json:"minimum_hour"`
	AttendanceValidated  bool    `json:"attendance_validated"`
	WorkTypeID           *uint   `json:"work_type_id"`
	WorkType             string  `json:"work_type,omitempty"`
}
