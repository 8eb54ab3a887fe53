package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/repository"
)

// ── 考勤能力 ──

const (
	CapViewAttendance     = "can_view_attendance"
	CapCreateAttendance   = "can_create_attendance"
	CapEditAttendance     = "can_edit_attendance"
	CapDeleteAttendance   = "can_delete_attendance"
	CapApproveAttendance  = "can_approve_attendance"
	CapValidateAttendance = "can_validate_attendance"
	CapViewReports        = "can_view_reports"
	CapManageOvertime     = "can_manage_overtime"
	CapViewAllEmployees   = "can_view_all_employees"
	CapExportData         = "can_export_data"
)

// capabilityRule 能力名 → 所需权限 codename
type capabilityRule struct {
	Capability string
	Codename   string
}

// attendanceCapabilities 每项能力 = 拥有对应权限 OR 是直属上级
var attendanceCapabilities = []capabilityRule{
	{CapViewAttendance, "attendance.view_attendance"},
	{CapCreateAttendance, "attendance.add_attendance"},
	{CapEditAttendance, "attendance.change_attendance"},
	{CapDeleteAttendance, "attendance.delete_attendance"},
	{CapApproveAttendance, "attendance.change_attendance"},
	{CapValidateAttendance, "attendance.change_attendance"},
	{CapViewReports, "attendance.view_attendance"},
	{CapManageOvertime, "attendance.change_overtime"},
	{CapViewAllEmployees, "attendance.view_attendance"},
	{CapExportData, "attendance.view_attendance"},
}

var ErrUnknownCapability = errors.New("未知的权限能力")

// PermissionService 权限判定接口
type PermissionService interface {
	// AttendancePermissions 计算调用者的全部考勤能力
	AttendancePermissions(ctx context.Context, userID uint) (dto.AttendancePermissions, error)
	// HasCapability 判定单项能力（供路由中间件使用）
	HasCapability(ctx context.Context, userID uint, capability string) (bool, error)
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPermissionService 创建 PermissionService 实例
func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

func (s *permissionService) AttendancePermissions(ctx context.Context, userID uint) (dto.AttendancePermissions, error) {
	ev, err := s.newEvaluator(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make(dto.AttendancePermissions, len(attendanceCapabilities))
	for _, rule := range attendanceCapabilities {
		result[rule.Capability] = ev.allows(rule.Codename)
	}
	return result, nil
}

func (s *permissionService) HasCapability(ctx context.Context, userID uint, capability string) (bool, error) {
	var codename string
	for _, rule := range attendanceCapabilities {
		if rule.Capability == capability {
			codename = rule.Codename
			break
		}
	}
	if codename == "" {
		return false, ErrUnknownCapability
	}

	ev, err := s.newEvaluator(ctx, userID)
	if err != nil {
		return false, err
	}
	return ev.allows(codename), nil
}

// evaluator 单次请求内的权限快照，每个用户只查询一次
type evaluator struct {
	active    bool
	superuser bool
	codenames map[string]struct{}
	manager   bool
}

func (e *evaluator) hasPerm(codename string) bool {
	if !e.active {
		return false
	}
	if e.superuser {
		return true
	}
	_, ok := e.codenames[codename]
	return ok
}

func (e *evaluator) allows(codename string) bool {
	return e.hasPerm(codename) || e.manager
}

func (s *permissionService) newEvaluator(ctx context.Context, userID uint) (*evaluator, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	ev := &evaluator{
		active:    user.IsActive,
		superuser: user.IsSuperuser,
		codenames: map[string]struct{}{},
	}

	// 非活跃用户与超级用户无需查询权限表
	if user.IsActive && !user.IsSuperuser {
		codes, err := s.repo.Permission.ListCodenamesForUser(ctx, userID)
		if err != nil {
			s.logger.Error("查询用户权限失败", zap.Uint("user_id", userID), zap.Error(err))
			return nil, err
		}
		for _, c := range codes {
			ev.codenames[c] = struct{}{}
		}
	}

	ev.manager, err = s.repo.Permission.IsReportingManager(ctx, userID)
	if err != nil {
		s.logger.Error("查询直属上级关系失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return ev, nil
}
