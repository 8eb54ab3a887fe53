package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db         *gorm.DB
	Org        OrgRepository
	Employee   EmployeeRepository
	Attendance AttendanceRepository
	User       UserRepository
	Permission PermissionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		Org:        NewOrgRepo(db),
		Employee:   NewEmployeeRepo(db),
		Attendance: NewAttendanceRepo(db),
		User:       NewUserRepo(db),
		Permission: NewPermissionRepo(db),
	}
}

// Ping 检查数据库连通性（健康检查）
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ── create-or-get ──

// getOrCreate 按自然键查找记录，不存在时插入 row 并返回 created=true。
// 不开启事务：并发插入同一自然键时由唯一索引拒绝，错误原样返回。
func getOrCreate[T any](ctx context.Context, db *gorm.DB, naturalKey map[string]interface{}, row *T) (*T, bool, error) {
	var existing T
	err := db.WithContext(ctx).Where(naturalKey).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// exists 判断满足条件的记录是否存在
func exists(ctx context.Context, db *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(model).
		Where(query, args...).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
