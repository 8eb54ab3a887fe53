package repository

import (
	"context"

	"gorm.io/gorm"

	"hr-suite/backend/internal/model"
)

// OrgRepository 组织基础数据（公司、部门、岗位、角色、工作类型）访问接口
// 均按名称自然键 create-or-get
type OrgRepository interface {
	GetOrCreateCompany(ctx context.Context, company *model.Company) (*model.Company, bool, error)
	GetOrCreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, bool, error)
	GetOrCreateJobPosition(ctx context.Context, pos *model.JobPosition) (*model.JobPosition, bool, error)
	GetOrCreateJobRole(ctx context.Context, role *model.JobRole) (*model.JobRole, bool, error)
	GetOrCreateWorkType(ctx context.Context, wt *model.WorkType) (*model.WorkType, bool, error)
}

type orgRepo struct {
	db *gorm.DB
}

// NewOrgRepo 创建 OrgRepository 实例
func NewOrgRepo(db *gorm.DB) OrgRepository {
	return &orgRepo{db: db}
}

func (r *orgRepo) GetOrCreateCompany(ctx context.Context, company *model.Company) (*model.Company, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{"company": company.Company}, company)
}

func (r *orgRepo) GetOrCreateDepartment(ctx context.Context, dept *model.Department) (*model.Department, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{"department": dept.Department}, dept)
}

func (r *orgRepo) GetOrCreateJobPosition(ctx context.Context, pos *model.JobPosition) (*model.JobPosition, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{"job_position": pos.JobPosition}, pos)
}

func (r *orgRepo) GetOrCreateJobRole(ctx context.Context, role *model.JobRole) (*model.JobRole, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{"job_role": role.JobRole}, role)
}

func (r *orgRepo) GetOrCreateWorkType(ctx context.Context, wt *model.WorkType) (*model.WorkType, bool, error) {
	return getOrCreate(ctx, r.db, map[string]interface{}{"work_type": wt.WorkType}, wt)
}
