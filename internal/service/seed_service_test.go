package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hr-suite/backend/config"
)

var seedNow = func() time.Time { return time.Date(2025, 6, 2, 14, 30, 0, 0, time.Local) }

func newTestSeedService(cfg *config.SeedConfig) (SeedService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewSeedService(cfg, repo, zap.NewNop(), seedNow), mocks
}

func TestSeedService_Run_CreatesFixtures(t *testing.T) {
	svc, mocks := newTestSeedService(&config.SeedConfig{EmployeeCount: 20})
	var out bytes.Buffer

	report, err := svc.Run(context.Background(), &out)
	if err != nil {
		t.Fatalf("Run 失败: %v", err)
	}

	if report.EmployeesCreated != 20 || len(mocks.employee.employees) != 20 {
		t.Errorf("期望 20 名员工，得到 report=%d stored=%d", report.EmployeesCreated, len(mocks.employee.employees))
	}
	if report.AttendanceCreated != 20 || len(mocks.attendance.records) != 20 {
		t.Errorf("期望 20 条考勤，得到 report=%d stored=%d", report.AttendanceCreated, len(mocks.attendance.records))
	}
	if len(mocks.org.companies) != 1 || len(mocks.org.workTypes) != 1 {
		t.Error("基础数据应各创建一条")
	}

	for _, want := range []string{
		"Creating test data...",
		"Created company: Test Company",
		"Created department: IT Department",
		"Created job position: Software Developer",
		"Created job role: Developer",
		"Created work type: Full Time",
		"Created employee: Employee1 Test1",
		"Created attendance record ID 1 for employee Employee1",
		"All attendance records:",
		"ID: 20, Employee: Employee20, Date: 2025-06-02",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("输出缺少 %q", want)
		}
	}
}

func TestSeedService_Run_FieldValues(t *testing.T) {
	svc, mocks := newTestSeedService(nil)
	if _, err := svc.Run(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("Run 失败: %v", err)
	}

	emp7, err := mocks.employee.GetByUserID(context.Background(), 7)
	if err != nil {
		t.Fatalf("员工 7 不存在: %v", err)
	}
	if emp7.EmployeeFirstName != "Employee7" || *emp7.EmployeeLastName != "Test7" ||
		emp7.Email != "employee7@test.com" || emp7.Phone != "1234567897" {
		t.Errorf("员工字段不符: %+v", emp7)
	}

	// 2..N 号员工汇报给 1 号
	emp1, _ := mocks.employee.GetByUserID(context.Background(), 1)
	info := mocks.employee.workInfos[*emp7.EmployeeWorkInfoID]
	if info.ReportingManagerID == nil || *info.ReportingManagerID != emp1.ID {
		t.Errorf("员工 7 的直属上级应为员工 1")
	}
	if mocks.employee.workInfos[*emp1.EmployeeWorkInfoID].ReportingManagerID != nil {
		t.Error("员工 1 不应有直属上级")
	}

	for _, a := range mocks.attendance.records {
		if a.AttendanceClockIn != "09:00:00" || *a.AttendanceClockOut != "17:00:00" {
			t.Errorf("签到签退时间不符: %s %v", a.AttendanceClockIn, a.AttendanceClockOut)
		}
		if a.AttendanceWorkedHour != "08:00" || a.MinimumHour != "08:00" || !a.AttendanceValidated {
			t.Errorf("工时或审核状态不符: %+v", a)
		}
		if a.AttendanceDate.Format(dateLayout) != "2025-06-02" {
			t.Errorf("考勤日期应为当天，得到 %s", a.AttendanceDate.Format(dateLayout))
		}
		if a.WorkTypeID == nil {
			t.Error("考勤应关联工作类型")
		}
	}
}

func TestSeedService_Run_Idempotent(t *testing.T) {
	svc, mocks := newTestSeedService(nil)
	ctx := context.Background()

	if _, err := svc.Run(ctx, &bytes.Buffer{}); err != nil {
		t.Fatalf("首次 Run 失败: %v", err)
	}

	var out bytes.Buffer
	report, err := svc.Run(ctx, &out)
	if err != nil {
		t.Fatalf("第二次 Run 失败: %v", err)
	}

	if report.EmployeesCreated != 0 || report.AttendanceCreated != 0 {
		t.Errorf("第二次执行不应创建任何记录: %+v", report)
	}
	if report.AttendanceExisting != 20 {
		t.Errorf("期望 20 条已存在，得到 %d", report.AttendanceExisting)
	}
	if len(mocks.employee.employees) != 20 || len(mocks.attendance.records) != 20 {
		t.Error("记录数量不应变化")
	}
	if strings.Contains(out.String(), "Created ") {
		t.Errorf("第二次执行不应输出 Created 行:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Attendance record already exists for employee Employee3") {
		t.Error("应输出已存在提示")
	}
}

func TestSeedService_Run_SkipsFailedEmployee(t *testing.T) {
	svc, mocks := newTestSeedService(nil)
	mocks.employee.failEmails["employee3@test.com"] = true

	var out bytes.Buffer
	report, err := svc.Run(context.Background(), &out)
	if err != nil {
		t.Fatalf("单条失败不应中断执行: %v", err)
	}

	if report.EmployeesFailed != 1 || report.EmployeesCreated != 19 {
		t.Errorf("期望 19 成功 1 失败，得到 %+v", report)
	}
	if report.AttendanceCreated != 19 || report.AttendanceSkipped != 1 {
		t.Errorf("期望 19 条考勤且跳过 1 条，得到 %+v", report)
	}
	if !strings.Contains(out.String(), "Employee with ID 3 not found") {
		t.Error("应输出员工不存在提示")
	}
}

func TestSeedService_Run_AdminUser(t *testing.T) {
	svc, mocks := newTestSeedService(&config.SeedConfig{AdminUsername: "admin", AdminPassword: "admin-pass"})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Run(ctx, &bytes.Buffer{}); err != nil {
			t.Fatalf("Run 失败: %v", err)
		}
	}

	if len(mocks.user.users) != 1 {
		t.Fatalf("管理员应只创建一次，得到 %d", len(mocks.user.users))
	}
	admin, _ := mocks.user.GetByUsername(ctx, "admin")
	if !admin.IsSuperuser || !admin.IsActive {
		t.Error("管理员应为活跃超级用户")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin-pass")) != nil {
		t.Error("密码哈希不匹配")
	}
}

// 西半球时区的深夜：本地日期与 UTC 日期不同
func TestSeedService_Run_DateFromNonUTCClock(t *testing.T) {
	newYork := time.FixedZone("EDT", -4*60*60)
	now := func() time.Time { return time.Date(2026, 10, 15, 22, 30, 0, 0, newYork) }

	repo, mocks := newMockRepos()
	svc := NewSeedService(&config.SeedConfig{EmployeeCount: 3}, repo, zap.NewNop(), now)

	var out bytes.Buffer
	if _, err := svc.Run(context.Background(), &out); err != nil {
		t.Fatalf("Run 失败: %v", err)
	}

	for _, key := range mocks.attendance.order {
		d := mocks.attendance.records[key].AttendanceDate
		if d.Format(dateLayout) != "2026-10-15" {
			t.Errorf("考勤日期应为本地日期 2026-10-15，得到 %s", d.Format(dateLayout))
		}
		if d.Location() != time.UTC || d.Hour() != 0 || d.Minute() != 0 {
			t.Errorf("考勤日期应为 UTC 零点，得到 %s", d.Format(time.RFC3339))
		}
	}
	if !strings.Contains(out.String(), "Date: 2026-10-15") {
		t.Errorf("输出缺少当日日期: %s", out.String())
	}

	// 第二次执行命中同一自然键
	out.Reset()
	report, err := svc.Run(context.Background(), &out)
	if err != nil {
		t.Fatalf("第二次 Run 失败: %v", err)
	}
	if report.AttendanceCreated != 0 || report.AttendanceExisting != 3 {
		t.Errorf("期望 0 新建 3 已存在，得到 %+v", report)
	}
}
