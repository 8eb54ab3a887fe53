package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"hr-suite/backend/internal/model"
	pkgerrors "hr-suite/backend/pkg/errors"
)

// EmployeeListFilter 员工列表过滤条件
type EmployeeListFilter struct {
	Search   string // 名、姓或邮箱包含（不区分大小写）
	IsActive *bool
}

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Employee, error)
	// GetOrCreateByUserID 以 employee_user_id 为自然键；emp.EmployeeWorkInfo 非空时一并创建
	GetOrCreateByUserID(ctx context.Context, emp *model.Employee) (*model.Employee, bool, error)
	List(ctx context.Context, filter EmployeeListFilter, offset, limit int) ([]model.Employee, int64, error)
	Update(ctx context.Context, emp *model.Employee) error
	Delete(ctx context.Context, id uint) error

	// 唯一性 / 引用校验，excludeID 为 0 表示不排除
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	BadgeIDTaken(ctx context.Context, badgeID string, excludeID uint) (bool, error)
	UserIDTaken(ctx context.Context, userID uint, excludeID uint) (bool, error)
	WorkInfoExists(ctx context.Context, id uint) (bool, error)
	BankDetailsExists(ctx context.Context, id uint) (bool, error)
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepo) GetByID(ctx context.Context, id uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetByUserID(ctx context.Context, userID uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_user_id = ?", userID).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) GetOrCreateByUserID(ctx context.Context, emp *model.Employee) (*model.Employee, bool, error) {
	if emp.EmployeeUserID == nil {
		return nil, false, errors.New("employee_user_id 为空，无法按自然键查找")
	}
	return getOrCreate(ctx, r.db, map[string]interface{}{"employee_user_id": *emp.EmployeeUserID}, emp)
}

func (r *employeeRepo) List(ctx context.Context, filter EmployeeListFilter, offset, limit int) ([]model.Employee, int64, error) {
	var emps []model.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Employee{})

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		db = db.Where(
			"LOWER(employee_first_name) LIKE ? OR LOWER(employee_last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&emps).Error
	return emps, total, err
}

// Update 全字段更新（带乐观锁），nil 字段写入 NULL
func (r *employeeRepo) Update(ctx context.Context, emp *model.Employee) error {
	oldVersion := emp.Version
	result := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("id = ? AND version = ?", emp.ID, oldVersion).
		Updates(map[string]interface{}{
			"badge_id":                   emp.BadgeID,
			"employee_user_id":           emp.EmployeeUserID,
			"employee_first_name":        emp.EmployeeFirstName,
			"employee_last_name":         emp.EmployeeLastName,
			"employee_profile":           emp.EmployeeProfile,
			"email":                      emp.Email,
			"phone":                      emp.Phone,
			"address":                    emp.Address,
			"country":                    emp.Country,
			"state":                      emp.State,
			"city":                       emp.City,
			"zip":                        emp.Zip,
			"dob":                        emp.Dob,
			"gender":                     emp.Gender,
			"qualification":              emp.Qualification,
			"experience":                 emp.Experience,
			"marital_status":             emp.MaritalStatus,
			"children":                   emp.Children,
			"emergency_contact":          emp.EmergencyContact,
			"emergency_contact_name":     emp.EmergencyContactName,
			"emergency_contact_relation": emp.EmergencyContactRelation,
			"additional_info":            emp.AdditionalInfo,
			"is_active":                  emp.IsActive,
			"employee_work_info_id":      emp.EmployeeWorkInfoID,
			"employee_bank_details_id":   emp.EmployeeBankDetailsID,
			"updated_by":                 emp.UpdatedBy,
			"version":                    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	emp.Version = oldVersion + 1
	return nil
}

// Delete 物理删除；考勤记录随外键级联删除
func (r *employeeRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *employeeRepo) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &model.Employee{}, "email = ? AND id <> ?", email, excludeID)
}

func (r *employeeRepo) BadgeIDTaken(ctx context.Context, badgeID string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &model.Employee{}, "badge_id = ? AND id <> ?", badgeID, excludeID)
}

func (r *employeeRepo) UserIDTaken(ctx context.Context, userID uint, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &model.Employee{}, "employee_user_id = ? AND id <> ?", userID, excludeID)
}

func (r *employeeRepo) WorkInfoExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &model.EmployeeWorkInfo{}, "id = ?", id)
}

func (r *employeeRepo) BankDetailsExists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &model.EmployeeBankDetails{}, "id = ?", id)
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
