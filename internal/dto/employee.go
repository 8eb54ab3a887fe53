package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ── 员工模块 DTO ──

// EmployeeRequest 创建 / 全量更新员工请求（POST、PUT）
// 仅 employee_first_name、email、phone 必填，其余字段可省略或为 null
type EmployeeRequest struct {
	BadgeID                  *string                `json:"badge_id"                   binding:"omitempty,max=50"`
	EmployeeUserID           *uint                  `json:"employee_user_id"           binding:"omitempty,min=1"`
	EmployeeFirstName        string                 `json:"employee_first_name"        binding:"required,max=200"`
	EmployeeLastName         *string                `json:"employee_last_name"         binding:"omitempty,max=200"`
	EmployeeProfile          *string                `json:"employee_profile"           binding:"omitempty,max=255"`
	Email                    string                 `json:"email"                      binding:"required,email,max=254"`
	Phone                    string                 `json:"phone"                      binding:"required,max=25"`
	Address                  *string                `json:"address"`
	Country                  *string                `json:"country"                    binding:"omitempty,max=100"`
	State                    *string                `json:"state"                      binding:"omitempty,max=100"`
	City                     *string                `json:"city"                       binding:"omitempty,max=30"`
	Zip                      *string                `json:"zip"                        binding:"omitempty,max=20"`
	Dob                      *string                `json:"dob"                        binding:"omitempty,datetime=2006-01-02"`
	Gender                   *string                `json:"gender"                     binding:"omitempty,oneof=male female other"`
	Qualification            *string                `json:"qualification"              binding:"omitempty,max=50"`
	Experience               *int                   `json:"experience"                 binding:"omitempty,min=0"`
	MaritalStatus            *string                `json:"marital_status"             binding:"omitempty,oneof=single married divorced"`
	Children                 *int                   `json:"children"                   binding:"omitempty,min=0"`
	EmergencyContact         *string                `json:"emergency_contact"          binding:"omitempty,max=15"`
	EmergencyContactName     *string                `json:"emergency_contact_name"     binding:"omitempty,max=20"`
	EmergencyContactRelation *string                `json:"emergency_contact_relation" binding:"omitempty,max=20"`
	AdditionalInfo           map[string]interface{} `json:"additional_info"`
	IsActive                 *bool                  `json:"is_active"`
	EmployeeWorkInfoID       *uint                  `json:"employee_work_info_id"      binding:"omitempty,min=1"`
	EmployeeBankDetailsID    *uint                  `json:"employee_bank_details_id"   binding:"omitempty,min=1"`
}

// PatchEmployeeRequest 部分更新员工请求（PATCH）
// 出现且非 null 的字段被更新；显式 null 的可空字段记入 Nulls 并被清空
type PatchEmployeeRequest struct {
	BadgeID                  *string                `json:"badge_id"                   binding:"omitempty,max=50"`
	EmployeeUserID           *uint                  `json:"employee_user_id"           binding:"omitempty,min=1"`
	EmployeeFirstName        *string                `json:"employee_first_name"        binding:"omitempty,min=1,max=200"`
	EmployeeLastName         *string                `json:"employee_last_name"         binding:"omitempty,max=200"`
	EmployeeProfile          *string                `json:"employee_profile"           binding:"omitempty,max=255"`
	Email                    *string                `json:"email"                      binding:"omitempty,email,max=254"`
	Phone                    *string                `json:"phone"                      binding:"omitempty,min=1,max=25"`
	Address                  *string                `json:"address"`
	Country                  *string                `json:"country"                    binding:"omitempty,max=100"`
	State                    *string                `json:"state"                      binding:"omitempty,max=100"`
	City                     *string                `json:"city"                       binding:"omitempty,max=30"`
	Zip                      *string                `json:"zip"                        binding:"omitempty,max=20"`
	Dob                      *string                `json:"dob"                        binding:"omitempty,datetime=2006-01-02"`
	Gender                   *string                `json:"gender"                     binding:"omitempty,oneof=male female other"`
	Qualification            *string                `json:"qualification"              binding:"omitempty,max=50"`
	Experience               *int                   `json:"experience"                 binding:"omitempty,min=0"`
	MaritalStatus            *string                `json:"marital_status"             binding:"omitempty,oneof=single married divorced"`
	Children                 *int                   `json:"children"                   binding:"omitempty,min=0"`
	EmergencyContact         *string                `json:"emergency_contact"          binding:"omitempty,max=15"`
	EmergencyContactName     *string                `json:"emergency_contact_name"     binding:"omitempty,max=20"`
	EmergencyContactRelation *string                `json:"emergency_contact_relation" binding:"omitempty,max=20"`
	AdditionalInfo           map[string]interface{} `json:"additional_info"`
	IsActive                 *bool                  `json:"is_active"`
	EmployeeWorkInfoID       *uint                  `json:"employee_work_info_id"      binding:"omitempty,min=1"`
	EmployeeBankDetailsID    *uint                  `json:"employee_bank_details_id"   binding:"omitempty,min=1"`

	Nulls map[string]bool `json:"-" binding:"-"`
}

// PatchNullableFields PATCH 中允许显式置为 null 的字段
var PatchNullableFields = []string{
	"badge_id", "employee_user_id", "employee_last_name", "employee_profile",
	"address", "country", "state", "city", "zip", "dob", "qualification",
	"experience", "marital_status", "children", "emergency_contact",
	"emergency_contact_name", "emergency_contact_relation", "additional_info",
	"employee_work_info_id", "employee_bank_details_id",
}

// CollectNulls 从原始请求体中记录显式为 null 的字段
// 不可空字段（如 email、phone）为 null 时返回错误
func (r *PatchEmployeeRequest) CollectNulls(body []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}

	nullable := make(map[string]bool, len(PatchNullableFields))
	for _, f := range PatchNullableFields {
		nullable[f] = true
	}

	for key, val := range raw {
		if !bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			continue
		}
		if !nullable[key] {
			return fmt.Errorf("字段 %s 不能为 null", key)
		}
		if r.Nulls == nil {
			r.Nulls = make(map[string]bool)
		}
		r.Nulls[key] = true
	}
	return nil
}

// EmployeeListRequest 员工列表查询参数
type EmployeeListRequest struct {
	PaginationRequest
	Search   string `form:"search"    binding:"omitempty,max=100"` // 匹配姓名或邮箱
	IsActive *bool  `form:"is_active"`
}

// EmployeeResponse 员工详情响应
type EmployeeResponse struct {
	ID                       uint                   `json:"id"`
	BadgeID                  *string                `json:"badge_id"`
	EmployeeUserID           *uint                  `json:"employee_user_id"`
	EmployeeFirstName        string                 `json:"employee_first_name"`
	EmployeeLastName         *string                `json:"employee_last_name"`
	EmployeeProfile          *string                `json:"employee_profile"`
	Email                    string                 `json:"email"`
	Phone                    string                 `json:"phone"`
	Address                  *string                `json:"address"`
	Country                  *string                `json:"country"`
	State                    *string                `json:"state"`
	City                     *string                `json:"city"`
	Zip                      *string                `json:"zip"`
	Dob                      *string                `json:"dob"`
	Gender                   string                 `json:"gender"`
	Qualification            *string                `json:"qualification"`
	Experience               *int                   `json:"experience"`
	MaritalStatus            *string                `json:"marital_status"`
	Children                 *int                   `json:"children"`
	EmergencyContact         *string                `json:"emergency_contact"`
	EmergencyContactName     *string                `json:"emergency_contact_name"`
	EmergencyContactRelation *string                `json:"emergency_contact_relation"`
	AdditionalInfo           map[string]interface{} `json:"additional_info"`
	IsActive                 bool                   `json:"is_active"`
	EmployeeWorkInfoID       *uint                  `json:"employee_work_info_id"`
	EmployeeBankDetailsID    *uint                  `json:"employee_bank_details_id"`
	CreatedAt                string                 `json:"created_at"`
	UpdatedAt                string                 `json:"updated_at"`
}
