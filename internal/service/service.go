package service

import (
	"time"

	"go.uber.org/zap"

	"hr-suite/backend/config"
	"hr-suite/backend/internal/repository"
	"hr-suite/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Employee   EmployeeService
	Permission PermissionService
	Attendance AttendanceService
	Seed       SeedService
}

// NewService 创建 Service 聚合
// blacklist 可为 nil（未配置 Redis 时登出仅由客户端丢弃 Token）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		Employee:   NewEmployeeService(repo, logger),
		Permission: NewPermissionService(repo, logger),
		Attendance: NewAttendanceService(repo, logger),
		Seed:       NewSeedService(&cfg.Seed, repo, logger, time.Now),
	}
}
