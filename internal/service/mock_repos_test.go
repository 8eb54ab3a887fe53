package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hr-suite/backend/internal/model"
	"hr-suite/backend/internal/repository"
	pkgerrors "hr-suite/backend/pkg/errors"
)

// ── Mock OrgRepository ──

type mockOrgRepo struct {
	nextID      uint
	companies   map[string]*model.Company
	departments map[string]*model.Department
	positions   map[string]*model.JobPosition
	roles       map[string]*model.JobRole
	workTypes   map[string]*model.WorkType
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{
		companies:   make(map[string]*model.Company),
		departments: make(map[string]*model.Department),
		positions:   make(map[string]*model.JobPosition),
		roles:       make(map[string]*model.JobRole),
		workTypes:   make(map[string]*model.WorkType),
	}
}

func (m *mockOrgRepo) id() uint {
	m.nextID++
	return m.nextID
}

func (m *mockOrgRepo) GetOrCreateCompany(_ context.Context, c *model.Company) (*model.Company, bool, error) {
	if got, ok := m.companies[c.Company]; ok {
		return got, false, nil
	}
	c.ID = m.id()
	m.companies[c.Company] = c
	return c, true, nil
}

func (m *mockOrgRepo) GetOrCreateDepartment(_ context.Context, d *model.Department) (*model.Department, bool, error) {
	if got, ok := m.departments[d.Department]; ok {
		return got, false, nil
	}
	d.ID = m.id()
	m.departments[d.Department] = d
	return d, true, nil
}

func (m *mockOrgRepo) GetOrCreateJobPosition(_ context.Context, p *model.JobPosition) (*model.JobPosition, bool, error) {
	if got, ok := m.positions[p.JobPosition]; ok {
		return got, false, nil
	}
	p.ID = m.id()
	m.positions[p.JobPosition] = p
	return p, true, nil
}

func (m *mockOrgRepo) GetOrCreateJobRole(_ context.Context, r *model.JobRole) (*model.JobRole, bool, error) {
	if got, ok := m.roles[r.JobRole]; ok {
		return got, false, nil
	}
	r.ID = m.id()
	m.roles[r.JobRole] = r
	return r, true, nil
}

func (m *mockOrgRepo) GetOrCreateWorkType(_ context.Context, w *model.WorkType) (*model.WorkType, bool, error) {
	if got, ok := m.workTypes[w.WorkType]; ok {
		return got, false, nil
	}
	w.ID = m.id()
	m.workTypes[w.WorkType] = w
	return w, true, nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	nextID      uint
	employees   map[uint]*model.Employee
	workInfos   map[uint]*model.EmployeeWorkInfo
	bankDetails map[uint]bool
	failEmails  map[string]bool // 写入这些邮箱时返回错误
	concurrent  bool            // 模拟读取后被其他请求修改
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees:   make(map[uint]*model.Employee),
		workInfos:   make(map[uint]*model.EmployeeWorkInfo),
		bankDetails: make(map[uint]bool),
		failEmails:  make(map[string]bool),
	}
}

func (m *mockEmployeeRepo) Create(_ context.Context, emp *model.Employee) error {
	if m.failEmails[emp.Email] {
		return errors.New("模拟写入失败")
	}
	if emp.EmployeeWorkInfo != nil {
		emp.EmployeeWorkInfo.ID = uint(len(m.workInfos) + 1)
		m.workInfos[emp.EmployeeWorkInfo.ID] = emp.EmployeeWorkInfo
		emp.EmployeeWorkInfoID = &emp.EmployeeWorkInfo.ID
	}
	m.nextID++
	emp.ID = m.nextID
	if emp.Version == 0 {
		emp.Version = 1
	}
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id uint) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByUserID(_ context.Context, userID uint) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeUserID != nil && *e.EmployeeUserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetOrCreateByUserID(ctx context.Context, emp *model.Employee) (*model.Employee, bool, error) {
	if existing, err := m.GetByUserID(ctx, *emp.EmployeeUserID); err == nil {
		return existing, false, nil
	}
	if err := m.Create(ctx, emp); err != nil {
		return nil, false, err
	}
	return emp, true, nil
}

func (m *mockEmployeeRepo) List(_ context.Context, filter repository.EmployeeListFilter, offset, limit int) ([]model.Employee, int64, error) {
	var all []model.Employee
	for id := uint(1); id <= m.nextID; id++ {
		e, ok := m.employees[id]
		if !ok {
			continue
		}
		if filter.IsActive != nil && e.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" {
			kw := strings.ToLower(filter.Search)
			last := ""
			if e.EmployeeLastName != nil {
				last = *e.EmployeeLastName
			}
			if !strings.Contains(strings.ToLower(e.EmployeeFirstName), kw) &&
				!strings.Contains(strings.ToLower(last), kw) &&
				!strings.Contains(strings.ToLower(e.Email), kw) {
				continue
			}
		}
		all = append(all, *e)
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, emp *model.Employee) error {
	stored, ok := m.employees[emp.ID]
	if ok && m.concurrent {
		stored.Version++
	}
	if !ok || stored.Version != emp.Version {
		return pkgerrors.ErrOptimisticLock
	}
	emp.Version++
	cp := *emp
	m.employees[emp.ID] = &cp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.employees[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.employees, id)
	return nil
}

func (m *mockEmployeeRepo) taken(match func(e *model.Employee) bool, excludeID uint) bool {
	for id, e := range m.employees {
		if id != excludeID && match(e) {
			return true
		}
	}
	return false
}

func (m *mockEmployeeRepo) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	return m.taken(func(e *model.Employee) bool { return e.Email == email }, excludeID), nil
}

func (m *mockEmployeeRepo) BadgeIDTaken(_ context.Context, badgeID string, excludeID uint) (bool, error) {
	return m.taken(func(e *model.Employee) bool { return e.BadgeID != nil && *e.BadgeID == badgeID }, excludeID), nil
}

func (m *mockEmployeeRepo) UserIDTaken(_ context.Context, userID uint, excludeID uint) (bool, error) {
	return m.taken(func(e *model.Employee) bool { return e.EmployeeUserID != nil && *e.EmployeeUserID == userID }, excludeID), nil
}

func (m *mockEmployeeRepo) WorkInfoExists(_ context.Context, id uint) (bool, error) {
	_, ok := m.workInfos[id]
	return ok, nil
}

func (m *mockEmployeeRepo) BankDetailsExists(_ context.Context, id uint) (bool, error) {
	return m.bankDetails[id], nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	nextID    uint
	records   map[string]*model.Attendance // key: employee_id|date
	order     []string
	employees *mockEmployeeRepo
}

func newMockAttendanceRepo(employees *mockEmployeeRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance), employees: employees}
}

func attendanceKey(a *model.Attendance) string {
	return fmt.Sprintf("%d|%s", a.EmployeeID, a.AttendanceDate.Format(dateLayout))
}

func (m *mockAttendanceRepo) GetOrCreate(_ context.Context, att *model.Attendance) (*model.Attendance, bool, error) {
	key := attendanceKey(att)
	if got, ok := m.records[key]; ok {
		return got, false, nil
	}
	m.nextID++
	att.ID = m.nextID
	m.records[key] = att
	m.order = append(m.order, key)
	return att, true, nil
}

func (m *mockAttendanceRepo) withEmployee(a model.Attendance) model.Attendance {
	if m.employees != nil {
		if e, ok := m.employees.employees[a.EmployeeID]; ok {
			a.Employee = e
		}
	}
	return a
}

func (m *mockAttendanceRepo) List(_ context.Context, filter repository.AttendanceListFilter, offset, limit int) ([]model.Attendance, int64, error) {
	var all []model.Attendance
	for _, key := range m.order {
		a := m.records[key]
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != "" && a.AttendanceDate.Format(dateLayout) != filter.Date {
			continue
		}
		if filter.Validated != nil && a.AttendanceValidated != *filter.Validated {
			continue
		}
		all = append(all, m.withEmployee(*a))
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context) ([]model.Attendance, error) {
	var all []model.Attendance
	for _, key := range m.order {
		all = append(all, m.withEmployee(*m.records[key]))
	}
	return all, nil
}

func (m *mockAttendanceRepo) ListByDateRange(_ context.Context, from, to string) ([]model.Attendance, error) {
	var all []model.Attendance
	for _, key := range m.order {
		a := m.records[key]
		d := a.AttendanceDate.Format(dateLayout)
		if d >= from && d <= to {
			all = append(all, m.withEmployee(*a))
		}
	}
	return all, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[uint]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) add(u *model.User) *model.User {
	if u.ID == 0 {
		u.ID = uint(len(m.users) + 1)
	}
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetOrCreate(ctx context.Context, user *model.User) (*model.User, bool, error) {
	if u, err := m.GetByUsername(ctx, user.Username); err == nil {
		return u, false, nil
	}
	return m.add(user), true, nil
}

// ── Mock PermissionRepository ──

type mockPermissionRepo struct {
	codenames map[uint][]string // 直接权限与组权限的并集
	managers  map[uint]bool
	calls     int
}

func newMockPermissionRepo() *mockPermissionRepo {
	return &mockPermissionRepo{codenames: make(map[uint][]string), managers: make(map[uint]bool)}
}

func (m *mockPermissionRepo) ListCodenamesForUser(_ context.Context, userID uint) ([]string, error) {
	m.calls++
	return m.codenames[userID], nil
}

func (m *mockPermissionRepo) IsReportingManager(_ context.Context, userID uint) (bool, error) {
	m.calls++
	return m.managers[userID], nil
}

// ── 聚合 ──

type mockRepos struct {
	org        *mockOrgRepo
	employee   *mockEmployeeRepo
	attendance *mockAttendanceRepo
	user       *mockUserRepo
	permission *mockPermissionRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	emp := newMockEmployeeRepo()
	m := &mockRepos{
		org:        newMockOrgRepo(),
		employee:   emp,
		attendance: newMockAttendanceRepo(emp),
		user:       newMockUserRepo(),
		permission: newMockPermissionRepo(),
	}
	return &repository.Repository{
		Org:        m.org,
		Employee:   m.employee,
		Attendance: m.attendance,
		User:       m.user,
		Permission: m.permission,
	}, m
}
