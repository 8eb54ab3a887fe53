package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-suite/backend/internal/model"
)

// PermissionRepository 权限查询接口
type PermissionRepository interface {
	// ListCodenamesForUser 用户直接授予与所属组授予的权限 codename 并集
	ListCodenamesForUser(ctx context.Context, userID uint) ([]string, error)
	// IsReportingManager 该账号对应的员工是否为至少一名员工的直属上级
	IsReportingManager(ctx context.Context, userID uint) (bool, error)
}

type permissionRepo struct {
	db *gorm.DB
}

// NewPermissionRepo 创建 PermissionRepository 实例
func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db: db}
}

const userCodenamesSQL = `
SELECT p.codename FROM permissions p
JOIN user_permissions up ON up.permission_id = p.id
WHERE up.user_id = ?
UNION
SELECT p.codename FROM permissions p
JOIN group_permissions gp ON gp.permission_id = p.id
JOIN user_groups ug ON ug.group_id = gp.group_id
WHERE ug.user_id = ?`

func (r *permissionRepo) ListCodenamesForUser(ctx context.Context, userID uint) ([]string, error) {
	var codenames []string
	err := r.db.WithContext(ctx).
		Raw(userCodenamesSQL, userID, userID).
		Scan(&codenames).Error
	return codenames, err
}

func (r *permissionRepo) IsReportingManager(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EmployeeWorkInfo{}).
		Joins("JOIN employees e ON e.id = employee_work_infos.reporting_manager_id").
		Where("e.employee_user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
