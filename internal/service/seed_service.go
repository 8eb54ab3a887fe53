package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hr-suite/backend/config"
	"hr-suite/backend/internal/model"
	"hr-suite/backend/internal/repository"
)

// ── 测试数据固定值 ──

const (
	seedCompany     = "Test Company"
	seedDepartment  = "IT Department"
	seedJobPosition = "Software Developer"
	seedJobRole     = "Developer"
	seedWorkType    = "Full Time"

	seedClockIn     = "09:00:00"
	seedClockOut    = "17:00:00"
	seedMinimumHour = "08:00"

	defaultSeedEmployees = 20
)

// SeedReport 一次执行的统计结果
type SeedReport struct {
	EmployeesCreated   int
	EmployeesFailed    int
	AttendanceCreated  int
	AttendanceExisting int
	AttendanceSkipped  int
}

// SeedService 测试数据生成接口
type SeedService interface {
	// Run 按依赖顺序 create-or-get 全部测试数据，进度逐行写入 out。
	// 可重复执行；不使用事务，中途失败时已写入的数据保留。
	Run(ctx context.Context, out io.Writer) (*SeedReport, error)
}

type seedService struct {
	cfg    *config.SeedConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSeedService 创建 SeedService 实例；now 决定考勤日期
func NewSeedService(cfg *config.SeedConfig, repo *repository.Repository, logger *zap.Logger, now func() time.Time) SeedService {
	if now == nil {
		now = time.Now
	}
	return &seedService{cfg: cfg, repo: repo, logger: logger, now: now}
}

// seedRefs 基础数据
type seedRefs struct {
	company  *model.Company
	dept     *model.Department
	position *model.JobPosition
	role     *model.JobRole
	workType *model.WorkType
}

func (s *seedService) Run(ctx context.Context, out io.Writer) (*SeedReport, error) {
	fmt.Fprintln(out, "Creating test data...")

	if err := s.seedAdmin(ctx, out); err != nil {
		return nil, err
	}

	refs, err := s.seedReferences(ctx, out)
	if err != nil {
		return nil, err
	}

	report := &SeedReport{}
	count := s.employeeCount()

	// ── 员工 ──
	var manager *model.Employee
	for i := 1; i <= count; i++ {
		emp, err := s.seedEmployee(ctx, out, i, refs, manager)
		if err != nil {
			// 单条失败仅记录并跳过
			s.logger.Warn("创建员工失败", zap.Int("index", i), zap.Error(err))
			fmt.Fprintf(out, "Failed to create employee %d: %v\n", i, err)
			report.EmployeesFailed++
			continue
		}
		if emp.created {
			report.EmployeesCreated++
		}
		if i == 1 {
			manager = emp.Employee
		}
	}

	// ── 考勤 ──
	today := s.today()
	for i := 1; i <= count; i++ {
		if err := s.seedAttendance(ctx, out, i, today, refs.workType, report); err != nil {
			return report, err
		}
	}

	// ── 汇总 ──
	atts, err := s.repo.Attendance.ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("查询考勤记录失败: %w", err)
	}
	fmt.Fprintln(out, "\nAll attendance records:")
	for i := range atts {
		a := &atts[i]
		name := ""
		if a.Employee != nil {
			name = a.Employee.EmployeeFirstName
		}
		fmt.Fprintf(out, "ID: %d, Employee: %s, Date: %s\n", a.ID, name, a.AttendanceDate.Format(dateLayout))
	}

	s.logger.Info("测试数据生成完成",
		zap.Int("employees_created", report.EmployeesCreated),
		zap.Int("employees_failed", report.EmployeesFailed),
		zap.Int("attendance_created", report.AttendanceCreated),
		zap.Int("attendance_existing", report.AttendanceExisting),
		zap.Int("attendance_skipped", report.AttendanceSkipped),
	)
	return report, nil
}

func (s *seedService) employeeCount() int {
	if s.cfg == nil || s.cfg.EmployeeCount <= 0 {
		return defaultSeedEmployees
	}
	return s.cfg.EmployeeCount
}

// today now() 所在时区的日历日期，以该日 UTC 零点表示（与 date 列及 loc=UTC 的驱动转换一致）
func (s *seedService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// seedAdmin 配置了管理员账号时 create-or-get 超级用户
func (s *seedService) seedAdmin(ctx context.Context, out io.Writer) error {
	if s.cfg == nil || s.cfg.AdminUsername == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}

	user, created, err := s.repo.User.GetOrCreate(ctx, &model.User{
		Username:     s.cfg.AdminUsername,
		PasswordHash: string(hash),
		IsActive:     true,
		IsSuperuser:  true,
	})
	if err != nil {
		return fmt.Errorf("创建管理员失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created admin user: %s\n", user.Username)
	}
	return nil
}

func (s *seedService) seedReferences(ctx context.Context, out io.Writer) (*seedRefs, error) {
	refs := &seedRefs{}

	company, created, err := s.repo.Org.GetOrCreateCompany(ctx, &model.Company{
		Company: seedCompany,
		Address: "123 Test Street",
		City:    "Test City",
		State:   "Test State",
		Zip:     "12345",
		Country: "Test Country",
	})
	if err != nil {
		return nil, fmt.Errorf("创建公司失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created company: %s\n", company.Company)
	}
	refs.company = company

	dept, created, err := s.repo.Org.GetOrCreateDepartment(ctx, &model.Department{
		Department: seedDepartment,
		CompanyID:  &company.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("创建部门失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created department: %s\n", dept.Department)
	}
	refs.dept = dept

	pos, created, err := s.repo.Org.GetOrCreateJobPosition(ctx, &model.JobPosition{
		JobPosition:  seedJobPosition,
		DepartmentID: &dept.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("创建岗位失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created job position: %s\n", pos.JobPosition)
	}
	refs.position = pos

	role, created, err := s.repo.Org.GetOrCreateJobRole(ctx, &model.JobRole{
		JobRole:       seedJobRole,
		JobPositionID: &pos.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("创建职位角色失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created job role: %s\n", role.JobRole)
	}
	refs.role = role

	wt, created, err := s.repo.Org.GetOrCreateWorkType(ctx, &model.WorkType{WorkType: seedWorkType})
	if err != nil {
		return nil, fmt.Errorf("创建工作类型失败: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Created work type: %s\n", wt.WorkType)
	}
	refs.workType = wt

	return refs, nil
}

type seededEmployee struct {
	*model.Employee
	created bool
}

// seedEmployee 以 employee_user_id=i 为自然键；新建时一并创建工作信息，2..N 号员工汇报给 1 号
func (s *seedService) seedEmployee(ctx context.Context, out io.Writer, i int, refs *seedRefs, manager *model.Employee) (*seededEmployee, error) {
	userID := uint(i)
	lastName := fmt.Sprintf("Test%d", i)

	workInfo := &model.EmployeeWorkInfo{
		CompanyID:     &refs.company.ID,
		DepartmentID:  &refs.dept.ID,
		JobPositionID: &refs.position.ID,
		JobRoleID:     &refs.role.ID,
		WorkTypeID:    &refs.workType.ID,
	}
	if manager != nil {
		workInfo.ReportingManagerID = &manager.ID
	}
	workInfo.Version = 1

	emp := &model.Employee{
		EmployeeUserID:    &userID,
		EmployeeFirstName: fmt.Sprintf("Employee%d", i),
		EmployeeLastName:  &lastName,
		Email:             fmt.Sprintf("employee%d@test.com", i),
		Phone:             fmt.Sprintf("123456789%d", i),
		Gender:            defaultGender,
		IsActive:          true,
		EmployeeWorkInfo:  workInfo,
	}
	emp.Version = 1

	got, created, err := s.repo.Employee.GetOrCreateByUserID(ctx, emp)
	if err != nil {
		return nil, err
	}
	if created {
		fmt.Fprintf(out, "Created employee: %s\n", got.FullName())
	}
	return &seededEmployee{Employee: got, created: created}, nil
}

func (s *seedService) seedAttendance(ctx context.Context, out io.Writer, i int, day time.Time, wt *model.WorkType, report *SeedReport) error {
	emp, err := s.repo.Employee.GetByUserID(ctx, uint(i))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Fprintf(out, "Employee with ID %d not found\n", i)
			report.AttendanceSkipped++
			return nil
		}
		return fmt.Errorf("查询员工失败: %w", err)
	}

	worked, err := WorkedHour(seedClockIn, seedClockOut)
	if err != nil {
		return err
	}
	clockOut := seedClockOut

	att := &model.Attendance{
		EmployeeID:           emp.ID,
		AttendanceDate:       day,
		AttendanceClockIn:    seedClockIn,
		AttendanceClockOut:   &clockOut,
		AttendanceWorkedHour: worked,
		MinimumHour:          seedMinimumHour,
		AttendanceValidated:  true,
		WorkTypeID:           &wt.ID,
	}
	att.Version = 1

	got, created, err := s.repo.Attendance.GetOrCreate(ctx, att)
	if err != nil {
		// 单条失败仅记录并跳过
		s.logger.Warn("创建考勤失败", zap.Uint("employee_id", emp.ID), zap.Error(err))
		fmt.Fprintf(out, "Failed to create attendance for employee %s: %v\n", emp.EmployeeFirstName, err)
		report.AttendanceSkipped++
		return nil
	}
	if created {
		fmt.Fprintf(out, "Created attendance record ID %d for employee %s\n", got.ID, emp.EmployeeFirstName)
		report.AttendanceCreated++
	} else {
		fmt.Fprintf(out, "Attendance record already exists for employee %s\n", emp.EmployeeFirstName)
		report.AttendanceExisting++
	}
	return nil
}
