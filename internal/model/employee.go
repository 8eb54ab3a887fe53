package model

import "time"

// Employee 员工表，对应 employees
// 除 employee_first_name / email / phone 外均可为空
type Employee struct {
	ID                       uint       `gorm:"primaryKey"                          json:"id"`
	BadgeID                  *string    `gorm:"type:varchar(50);unique"             json:"badge_id"`
	EmployeeUserID           *uint      `gorm:"unique"                              json:"employee_user_id"` // 外部账号 ID，种子数据的自然键
	EmployeeFirstName        string     `gorm:"type:varchar(200);not null"          json:"employee_first_name"`
	EmployeeLastName         *string    `gorm:"type:varchar(200)"                   json:"employee_last_name"`
	EmployeeProfile          *string    `gorm:"type:varchar(255)"                   json:"employee_profile"`
	Email                    string     `gorm:"type:varchar(254);not null;unique"   json:"email"`
	Phone                    string     `gorm:"type:varchar(25);not null"           json:"phone"`
	Address                  *string    `gorm:"type:text"                           json:"address"`
	Country                  *string    `gorm:"type:varchar(100)"                   json:"country"`
	State                    *string    `gorm:"type:varchar(100)"                   json:"state"`
	City                     *string    `gorm:"type:varchar(30)"                    json:"city"`
	Zip                      *string    `gorm:"type:varchar(20)"                    json:"zip"`
	Dob                      *time.Time `gorm:"type:date"                           json:"dob"`
	Gender                   string     `gorm:"type:varchar(10);not null;default:'male'" json:"gender"` // male | female | other
	Qualification            *string    `gorm:"type:varchar(50)"                    json:"qualification"`
	Experience               *int       `json:"experience"`
	MaritalStatus            *string    `gorm:"type:varchar(50)"                    json:"marital_status"` // single | married | divorced
	Children                 *int       `json:"children"`
	EmergencyContact         *string    `gorm:"type:varchar(15)"                    json:"emergency_contact"`
	EmergencyContactName     *string    `gorm:"type:varchar(20)"                    json:"emergency_contact_name"`
	EmergencyContactRelation *string    `gorm:"type:varchar(20)"                    json:"emergency_contact_relation"`
	AdditionalInfo           JSONMap    `json:"additional_info"`
	IsActive                 bool       `gorm:"not null;default:true"               json:"is_active"`
	EmployeeWorkInfoID       *uint      `json:"employee_work_info_id"`
	EmployeeBankDetailsID    *uint      `json:"employee_bank_details_id"`
	VersionedModel

	// 关联
	EmployeeWorkInfo    *EmployeeWorkInfo    `gorm:"foreignKey:EmployeeWorkInfoID"    json:"employee_work_info,omitempty"`
	EmployeeBankDetails *EmployeeBankDetails `gorm:"foreignKey:EmployeeBankDetailsID" json:"employee_bank_details,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// FullName 姓名（姓为空时仅返回名）
func (e *Employee) FullName() string {
	if e.EmployeeLastName == nil || *e.EmployeeLastName == "" {
		return e.EmployeeFirstName
	}
	return e.EmployeeFirstName + " " + *e.EmployeeLastName
}

// EmployeeWorkInfo 员工工作信息表，对应 employee_work_infos
type EmployeeWorkInfo struct {
	ID                 uint       `gorm:"primaryKey"        json:"id"`
	CompanyID          *uint      `json:"company_id"`
	DepartmentID       *uint      `json:"department_id"`
	JobPositionID      *uint      `json:"job_position_id"`
	JobRoleID          *uint      `json:"job_role_id"`
	WorkTypeID         *uint      `json:"work_type_id"`
	ReportingManagerID *uint      `gorm:"index"             json:"reporting_manager_id"` // → employees.id
	Location           *string    `gorm:"type:varchar(50)"  json:"location"`
	Email              *string    `gorm:"type:varchar(254)" json:"email"`
	Mobile             *string    `gorm:"type:varchar(20)"  json:"mobile"`
	DateJoining        *time.Time `gorm:"type:date"         json:"date_joining"`
	VersionedModel

	Company     *Company     `gorm:"foreignKey:CompanyID"     json:"company,omitempty"`
	Department  *Department  `gorm:"foreignKey:DepartmentID"  json:"department,omitempty"`
	JobPosition *JobPosition `gorm:"foreignKey:JobPositionID" json:"job_position,omitempty"`
	JobRole     *JobRole     `gorm:"foreignKey:JobRoleID"     json:"job_role,omitempty"`
	WorkType    *WorkType    `gorm:"foreignKey:WorkTypeID"    json:"work_type,omitempty"`
}

// TableName 指定表名
func (EmployeeWorkInfo) TableName() string { return "employee_work_infos" }

// EmployeeBankDetails 员工银行信息表，对应 employee_bank_details
type EmployeeBankDetails struct {
	ID            uint    `gorm:"primaryKey"                 json:"id"`
	BankName      string  `gorm:"type:varchar(50);not null"  json:"bank_name"`
	AccountNumber string  `gorm:"type:varchar(50);not null"  json:"account_number"`
	Branch        string  `gorm:"type:varchar(50);not null"  json:"branch"`
	Address       *string `gorm:"type:text"                  json:"address"`
	VersionedModel
}

// TableName 指定表名
func (EmployeeBankDetails) TableName() string { return "employee_bank_details" }
