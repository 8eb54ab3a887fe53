package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hr-suite/backend/config"
	"hr-suite/backend/internal/api/handler"
	"hr-suite/backend/internal/api/middleware"
	"hr-suite/backend/internal/service"
	"hr-suite/backend/pkg/jwt"
)

// Deps 路由层依赖
// Blacklist 与 Limiter 为 nil 时对应功能降级放行（未配置 Redis）
type Deps struct {
	JWT        *jwt.Manager
	Permission service.PermissionService
	Blacklist  middleware.BlacklistChecker
	Limiter    middleware.RateLimiter
	Logger     *zap.Logger
}

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, deps Deps) *gin.Engine {
	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", h.Health.Health)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(deps.Limiter, cfg.Server.LoginLimit, cfg.Server.LoginWindow),
				h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.JWT, deps.Blacklist))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 员工模块
			employees := authorized.Group("/employee/employees")
			{
				employees.GET("/", h.Employee.ListEmployees)
				employees.POST("/", h.Employee.CreateEmployee)
				employees.GET("/:id/", h.Employee.GetEmployee)
				employees.PUT("/:id/", h.Employee.UpdateEmployee)
				employees.PATCH("/:id/", h.Employee.PatchEmployee)
				employees.DELETE("/:id/", h.Employee.DeleteEmployee)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.GET("/permission-check/", h.Attendance.PermissionCheck)
				attendance.GET("/attendance/",
					middleware.RequireCapability(deps.Permission, service.CapViewAttendance),
					h.Attendance.ListAttendance)
				attendance.GET("/export/",
					middleware.RequireCapability(deps.Permission, service.CapExportData),
					h.Attendance.ExportAttendance)
			}
		}
	}

	return r
}
