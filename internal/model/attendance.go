package model

import "time"

// Attendance 考勤表，对应 attendances
// (employee_id, attendance_date) 唯一：每名员工每天最多一条
type Attendance struct {
	ID                   uint      `gorm:"primaryKey"                                  json:"id"`
	EmployeeID           uint      `gorm:"not null;uniqueIndex:uq_attendance_employee_date" json:"employee_id"`
	AttendanceDate       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date" json:"attendance_date"`
	AttendanceClockIn    string    `gorm:"type:time;not null"                          json:"attendance_clock_in"`
	AttendanceClockOut   *string   `gorm:"type:time"                                   json:"attendance_clock_out"`
	AttendanceWorkedHour string    `gorm:"type:varchar(10);not null;default:'00:00'"   json:"attendance_worked_hour"` // HH:MM
	MinimumHour          string    `gorm:"type:varchar(10);not null;default:'00:00'"   json:"minimum_hour"`           // HH:MM
	AttendanceValidated  bool      `gorm:"not null;default:false"                      json:"attendance_validated"`
	WorkTypeID           *uint     `json:"work_type_id"`
	VersionedModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	WorkType *WorkType `gorm:"foreignKey:WorkTypeID" json:"work_type,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
