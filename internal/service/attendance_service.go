package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/model"
	"hr-suite/backend/internal/repository"
)

var (
	ErrExportRangeInvalid = errors.New("导出日期范围无效")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// maxExportDays 单次导出允许的最大天数
const maxExportDays = 366

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatICS  = "ics"
)

// ExportFile 导出结果，由 Handler 写入响应
type ExportFile struct {
	Content     *bytes.Buffer
	Filename    string
	ContentType string
}

// AttendanceService 考勤业务接口
type AttendanceService interface {
	List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error)
	// Export 导出 [from, to] 内的考勤记录，format 为 xlsx（默认）或 ics
	Export(ctx context.Context, req *dto.AttendanceExportRequest) (*ExportFile, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) List(ctx context.Context, req *dto.AttendanceListRequest) ([]dto.AttendanceResponse, int64, error) {
	filter := repository.AttendanceListFilter{
		EmployeeID: req.EmployeeID,
		Date:       req.AttendanceDate,
		Validated:  req.AttendanceValidated,
	}
	atts, total, err := s.repo.Attendance.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询考勤列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.AttendanceResponse, 0, len(atts))
	for i := range atts {
		list = append(list, toAttendanceResponse(&atts[i]))
	}
	return list, total, nil
}

// ═══════════════════════════════════════════════════════════
// Export 导出考勤
// ═══════════════════════════════════════════════════════════

func (s *attendanceService) Export(ctx context.Context, req *dto.AttendanceExportRequest) (*ExportFile, error) {
	from, err := time.Parse(dateLayout, req.From)
	if err != nil {
		return nil, ErrExportRangeInvalid
	}
	to, err := time.Parse(dateLayout, req.To)
	if err != nil {
		return nil, ErrExportRangeInvalid
	}
	if to.Before(from) || to.Sub(from) > maxExportDays*24*time.Hour {
		return nil, ErrExportRangeInvalid
	}

	atts, err := s.repo.Attendance.ListByDateRange(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	base := fmt.Sprintf("attendance_%s_%s", req.From, req.To)
	if req.Format == ExportFormatICS {
		buf, err := buildAttendanceICS(atts)
		if err != nil {
			s.logger.Error("生成 ICS 失败", zap.Error(err))
			return nil, ErrExportGenerateFail
		}
		return &ExportFile{Content: buf, Filename: base + ".ics", ContentType: "text/calendar; charset=utf-8"}, nil
	}

	buf, err := buildAttendanceXLSX(atts)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return &ExportFile{
		Content:     buf,
		Filename:    base + ".xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}, nil
}

var attendanceSheetHeaders = []string{"ID", "员工", "日期", "签到", "签退", "工时", "最低工时", "已审核", "工作类型"}

func buildAttendanceXLSX(atts []model.Attendance) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 24)
	f.SetColWidth(sheetName, "C", "I", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range attendanceSheetHeaders {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, c, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(attendanceSheetHeaders), 1)
	f.SetCellStyle(sheetName, "A1", last, headerStyle)

	for i := range atts {
		r := toAttendanceResponse(&atts[i])
		clockOut := "-"
		if r.AttendanceClockOut != nil {
			clockOut = *r.AttendanceClockOut
		}
		values := []interface{}{
			r.ID,
			attendanceEmployeeName(&atts[i]),
			r.AttendanceDate,
			r.AttendanceClockIn,
			clockOut,
			r.AttendanceWorkedHour,
			r.MinimumHour,
			r.AttendanceValidated,
			r.WorkType,
		}
		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// buildAttendanceICS 每条考勤生成一个 VEVENT（签到 → 签退）
func buildAttendanceICS(atts []model.Attendance) (*bytes.Buffer, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//hr-suite//attendance export//ZH")
	cal.SetXWRCalName("考勤记录")

	now := time.Now().UTC()
	for i := range atts {
		a := &atts[i]
		start, err := combineDateClock(a.AttendanceDate, a.AttendanceClockIn)
		if err != nil {
			return nil, err
		}
		end := start
		if a.AttendanceClockOut != nil {
			if end, err = combineDateClock(a.AttendanceDate, *a.AttendanceClockOut); err != nil {
				return nil, err
			}
			if end.Before(start) {
				end = end.Add(24 * time.Hour)
			}
		}

		event := cal.AddEvent(fmt.Sprintf("attendance-%d@hr-suite", a.ID))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s 出勤", attendanceEmployeeName(a)))
		event.SetDescription(fmt.Sprintf("工时 %s / 最低工时 %s", a.AttendanceWorkedHour, a.MinimumHour))
	}

	return bytes.NewBufferString(cal.Serialize()), nil
}

// ── 辅助函数 ──

func combineDateClock(date time.Time, clock string) (time.Time, error) {
	offset, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(offset), nil
}

func attendanceEmployeeName(a *model.Attendance) string {
	if a.Employee == nil {
		return fmt.Sprintf("#%d", a.EmployeeID)
	}
	return a.Employee.FullName()
}

func toAttendanceResponse(a *model.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:                   a.ID,
		EmployeeID:           a.EmployeeID,
		AttendanceDate:       a.AttendanceDate.Format(dateLayout),
		AttendanceClockIn:    a.AttendanceClockIn,
		AttendanceClockOut:   a.AttendanceClockOut,
		AttendanceWorkedHour: a.AttendanceWorkedHour,
		MinimumHour:          a.MinimumHour,
		AttendanceValidated:  a.AttendanceValidated,
		WorkTypeID:           a.WorkTypeID,
	}
	if a.Employee != nil {
		resp.EmployeeFirstName = a.Employee.EmployeeFirstName
		resp.EmployeeLastName = a.Employee.EmployeeLastName
	}
	if a.WorkType != nil {
		resp.WorkType = a.WorkType.WorkType
	}
	return resp
}
