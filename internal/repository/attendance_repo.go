package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-suite/backend/internal/model"
)

// dateLayout 日期列的查询参数格式
const dateLayout = "2006-01-02"

// AttendanceListFilter 考勤列表过滤条件
type AttendanceListFilter struct {
	EmployeeID *uint
	Date       string // YYYY-MM-DD
	Validated  *bool
}

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	// GetOrCreate 以 (employee_id, attendance_date) 为自然键
	GetOrCreate(ctx context.Context, att *model.Attendance) (*model.Attendance, bool, error)
	List(ctx context.Context, filter AttendanceListFilter, offset, limit int) ([]model.Attendance, int64, error)
	ListAll(ctx context.Context) ([]model.Attendance, error)
	// ListByDateRange 闭区间 [from, to]，格式 YYYY-MM-DD
	ListByDateRange(ctx context.Context, from, to string) ([]model.Attendance, error)
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) GetOrCreate(ctx context.Context, att *model.Attendance) (*model.Attendance, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{
		"employee_id":     att.EmployeeID,
		"attendance_date": att.AttendanceDate.Format(dateLayout),
	}, att)
}

func (r *attendanceRepo) List(ctx context.Context, filter AttendanceListFilter, offset, limit int) ([]model.Attendance, int64, error) {
	var atts []model.Attendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attendance{})

	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Date != "" {
		db = db.Where("attendance_date = ?", filter.Date)
	}
	if filter.Validated != nil {
		db = db.Where("attendance_validated = ?", *filter.Validated)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Employee").
		Preload("WorkType").
		Order("attendance_date DESC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&atts).Error
	return atts, total, err
}

func (r *attendanceRepo) ListAll(ctx context.Context) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Order("id ASC").
		Find(&atts).Error
	return atts, err
}

func (r *attendanceRepo) ListByDateRange(ctx context.Context, from, to string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("WorkType").
		Where("attendance_date BETWEEN ? AND ?", from, to).
		Order("attendance_date ASC, employee_id ASC").
		Find(&atts).Error
	return atts, err
}
