package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-suite/backend/internal/dto"
	"hr-suite/backend/internal/model"
	"hr-suite/backend/internal/repository"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound     = errors.New("员工不存在")
	ErrEmailExists          = errors.New("邮箱已被使用")
	ErrBadgeIDExists        = errors.New("工号已被使用")
	ErrEmployeeUserIDExists = errors.New("该账号已关联其他员工")
	ErrWorkInfoNotFound     = errors.New("工作信息不存在")
	ErrBankDetailsNotFound  = errors.New("银行信息不存在")
	ErrInvalidDob           = errors.New("出生日期格式应为 YYYY-MM-DD")
	ErrEmployeeConflict     = errors.New("员工数据违反唯一约束")
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
	defaultGender   = "male"
)

// EmployeeService 员工业务接口
type EmployeeService interface {
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Create(ctx context.Context, req *dto.EmployeeRequest, callerID uint) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.EmployeeResponse, error)
	// Update 全量更新：请求中缺省的可选字段置为 NULL
	Update(ctx context.Context, id uint, req *dto.EmployeeRequest, callerID uint) (*dto.EmployeeResponse, error)
	// Patch 部分更新：仅修改请求中出现的字段
	Patch(ctx context.Context, id uint, req *dto.PatchEmployeeRequest, callerID uint) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	filter := repository.EmployeeListFilter{
		Search:   req.Search,
		IsActive: req.IsActive,
	}
	emps, total, err := s.repo.Employee.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询员工列表失败", zap.Error(err))
		return nil, 0, err
	}

	list := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		list = append(list, toEmployeeResponse(&emps[i]))
	}
	return list, total, nil
}

// ────────────────────── Create ──────────────────────

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest, callerID uint) (*dto.EmployeeResponse, error) {
	emp := &model.Employee{}
	if err := applyEmployeeRequest(emp, req); err != nil {
		return nil, err
	}
	if err := s.checkConstraints(ctx, emp, 0); err != nil {
		return nil, err
	}

	if callerID != 0 {
		emp.CreatedBy = &callerID
		emp.UpdatedBy = &callerID
	}
	emp.Version = 1

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		return nil, s.translateWriteError(err, "创建员工失败")
	}

	s.logger.Info("员工已创建", zap.Uint("employee_id", emp.ID), zap.Uint("caller", callerID))
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *employeeService) GetByID(ctx context.Context, id uint) (*dto.EmployeeResponse, error) {
	emp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Update / Patch ──────────────────────

func (s *employeeService) Update(ctx context.Context, id uint, req *dto.EmployeeRequest, callerID uint) (*dto.EmployeeResponse, error) {
	emp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEmployeeRequest(emp, req); err != nil {
		return nil, err
	}
	return s.save(ctx, emp, callerID)
}

func (s *employeeService) Patch(ctx context.Context, id uint, req *dto.PatchEmployeeRequest, callerID uint) (*dto.EmployeeResponse, error) {
	emp, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEmployeePatch(emp, req); err != nil {
		return nil, err
	}
	return s.save(ctx, emp, callerID)
}

func (s *employeeService) save(ctx context.Context, emp *model.Employee, callerID uint) (*dto.EmployeeResponse, error) {
	if err := s.checkConstraints(ctx, emp, emp.ID); err != nil {
		return nil, err
	}
	if callerID != 0 {
		emp.UpdatedBy = &callerID
	}

	// 乐观锁冲突（pkg/errors.ErrOptimisticLock）原样返回给 Handler
	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		return nil, s.translateWriteError(err, "更新员工失败")
	}

	emp.UpdatedAt = time.Now()
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *employeeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Employee.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("删除员工失败", zap.Uint("employee_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("员工已删除", zap.Uint("employee_id", id))
	return nil
}

// ── 内部方法 ──

func (s *employeeService) load(ctx context.Context, id uint) (*model.Employee, error) {
	emp, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Uint("employee_id", id), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

// checkConstraints 唯一性与外键引用校验；excludeID 为当前记录（更新时）
func (s *employeeService) checkConstraints(ctx context.Context, emp *model.Employee, excludeID uint) error {
	if taken, err := s.repo.Employee.EmailTaken(ctx, emp.Email, excludeID); err != nil {
		return err
	} else if taken {
		return ErrEmailExists
	}

	if emp.BadgeID != nil {
		if taken, err := s.repo.Employee.BadgeIDTaken(ctx, *emp.BadgeID, excludeID); err != nil {
			return err
		} else if taken {
			return ErrBadgeIDExists
		}
	}

	if emp.EmployeeUserID != nil {
		if taken, err := s.repo.Employee.UserIDTaken(ctx, *emp.EmployeeUserID, excludeID); err != nil {
			return err
		} else if taken {
			return ErrEmployeeUserIDExists
		}
	}

	if emp.EmployeeWorkInfoID != nil {
		if ok, err := s.repo.Employee.WorkInfoExists(ctx, *emp.EmployeeWorkInfoID); err != nil {
			return err
		} else if !ok {
			return ErrWorkInfoNotFound
		}
	}

	if emp.EmployeeBankDetailsID != nil {
		if ok, err := s.repo.Employee.BankDetailsExists(ctx, *emp.EmployeeBankDetailsID); err != nil {
			return err
		} else if !ok {
			return ErrBankDetailsNotFound
		}
	}
	return nil
}

// translateWriteError 并发写入绕过预检时由唯一索引兜底
func (s *employeeService) translateWriteError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmployeeConflict
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEmployeeNotFound
	}
	s.logger.Error(msg, zap.Error(err))
	return err
}

// applyEmployeeRequest 以请求全量覆盖员工字段
func applyEmployeeRequest(emp *model.Employee, req *dto.EmployeeRequest) error {
	dob, err := parseDob(req.Dob)
	if err != nil {
		return err
	}

	emp.BadgeID = req.BadgeID
	emp.EmployeeUserID = req.EmployeeUserID
	emp.EmployeeFirstName = req.EmployeeFirstName
	emp.EmployeeLastName = req.EmployeeLastName
	emp.EmployeeProfile = req.EmployeeProfile
	emp.Email = req.Email
	emp.Phone = req.Phone
	emp.Address = req.Address
	emp.Country = req.Country
	emp.State = req.State
	emp.City = req.City
	emp.Zip = req.Zip
	emp.Dob = dob
	emp.Gender = defaultGender
	if req.Gender != nil {
		emp.Gender = *req.Gender
	}
	emp.Qualification = req.Qualification
	emp.Experience = req.Experience
	emp.MaritalStatus = req.MaritalStatus
	emp.Children = req.Children
	emp.EmergencyContact = req.EmergencyContact
	emp.EmergencyContactName = req.EmergencyContactName
	emp.EmergencyContactRelation = req.EmergencyContactRelation
	emp.AdditionalInfo = model.JSONMap(req.AdditionalInfo)
	emp.IsActive = true
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.EmployeeWorkInfoID = req.EmployeeWorkInfoID
	emp.EmployeeBankDetailsID = req.EmployeeBankDetailsID
	return nil
}

// applyEmployeePatch 仅覆盖请求中出现的非 null 字段
func applyEmployeePatch(emp *model.Employee, req *dto.PatchEmployeeRequest) error {
	if req.Dob != nil {
		dob, err := parseDob(req.Dob)
		if err != nil {
			return err
		}
		emp.Dob = dob
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setOptional := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	setInt := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}
	setID := func(dst **uint, src *uint) {
		if src != nil {
			*dst = src
		}
	}

	setOptional(&emp.BadgeID, req.BadgeID)
	setID(&emp.EmployeeUserID, req.EmployeeUserID)
	setString(&emp.EmployeeFirstName, req.EmployeeFirstName)
	setOptional(&emp.EmployeeLastName, req.EmployeeLastName)
	setOptional(&emp.EmployeeProfile, req.EmployeeProfile)
	setString(&emp.Email, req.Email)
	setString(&emp.Phone, req.Phone)
	setOptional(&emp.Address, req.Address)
	setOptional(&emp.Country, req.Country)
	setOptional(&emp.State, req.State)
	setOptional(&emp.City, req.City)
	setOptional(&emp.Zip, req.Zip)
	setString(&emp.Gender, req.Gender)
	setOptional(&emp.Qualification, req.Qualification)
	setInt(&emp.Experience, req.Experience)
	setOptional(&emp.MaritalStatus, req.MaritalStatus)
	setInt(&emp.Children, req.Children)
	setOptional(&emp.EmergencyContact, req.EmergencyContact)
	setOptional(&emp.EmergencyContactName, req.EmergencyContactName)
	setOptional(&emp.EmergencyContactRelation, req.EmergencyContactRelation)
	if req.AdditionalInfo != nil {
		emp.AdditionalInfo = model.JSONMap(req.AdditionalInfo)
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	setID(&emp.EmployeeWorkInfoID, req.EmployeeWorkInfoID)
	setID(&emp.EmployeeBankDetailsID, req.EmployeeBankDetailsID)

	for field := range req.Nulls {
		if reset, ok := employeeFieldClearers[field]; ok {
			reset(emp)
		}
	}
	return nil
}

// employeeFieldClearers 可空字段 → 置 NULL，键与 dto.PatchNullableFields 一致
var employeeFieldClearers = map[string]func(*model.Employee){
	"badge_id":                   func(e *model.Employee) { e.BadgeID = nil },
	"employee_user_id":           func(e *model.Employee) { e.EmployeeUserID = nil },
	"employee_last_name":         func(e *model.Employee) { e.EmployeeLastName = nil },
	"employee_profile":           func(e *model.Employee) { e.EmployeeProfile = nil },
	"address":                    func(e *model.Employee) { e.Address = nil },
	"country":                    func(e *model.Employee) { e.Country = nil },
	"state":                      func(e *model.Employee) { e.State = nil },
	"city":                       func(e *model.Employee) { e.City = nil },
	"zip":                        func(e *model.Employee) { e.Zip = nil },
	"dob":                        func(e *model.Employee) { e.Dob = nil },
	"qualification":              func(e *model.Employee) { e.Qualification = nil },
	"experience":                 func(e *model.Employee) { e.Experience = nil },
	"marital_status":             func(e *model.Employee) { e.MaritalStatus = nil },
	"children":                   func(e *model.Employee) { e.Children = nil },
	"emergency_contact":          func(e *model.Employee) { e.EmergencyContact = nil },
	"emergency_contact_name":     func(e *model.Employee) { e.EmergencyContactName = nil },
	"emergency_contact_relation": func(e *model.Employee) { e.EmergencyContactRelation = nil },
	"additional_info":            func(e *model.Employee) { e.AdditionalInfo = nil },
	"employee_work_info_id":      func(e *model.Employee) { e.EmployeeWorkInfoID = nil },
	"employee_bank_details_id":   func(e *model.Employee) { e.EmployeeBankDetailsID = nil },
}

func parseDob(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, ErrInvalidDob
	}
	return &t, nil
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	var dob *string
	if e.Dob != nil {
		d := e.Dob.Format(dateLayout)
		dob = &d
	}

	return dto.EmployeeResponse{
		ID:                       e.ID,
		BadgeID:                  e.BadgeID,
		EmployeeUserID:           e.EmployeeUserID,
		EmployeeFirstName:        e.EmployeeFirstName,
		EmployeeLastName:         e.EmployeeLastName,
		EmployeeProfile:          e.EmployeeProfile,
		Email:                    e.Email,
		Phone:                    e.Phone,
		Address:                  e.Address,
		Country:                  e.Country,
		State:                    e.State,
		City:                     e.City,
		Zip:                      e.Zip,
		Dob:                      dob,
		Gender:                   e.Gender,
		Qualification:            e.Qualification,
		Experience:               e.Experience,
		MaritalStatus:            e.MaritalStatus,
		Children:                 e.Children,
		EmergencyContact:         e.EmergencyContact,
		EmergencyContactName:     e.EmergencyContactName,
		EmergencyContactRelation: e.EmergencyContactRelation,
		AdditionalInfo:           e.AdditionalInfo,
		IsActive:                 e.IsActive,
		EmployeeWorkInfoID:       e.EmployeeWorkInfoID,
		EmployeeBankDetailsID:    e.EmployeeBankDetailsID,
		CreatedAt:                e.CreatedAt.Format(timestampLayout),
		UpdatedAt:                e.UpdatedAt.Format(timestampLayout),
	}
}
