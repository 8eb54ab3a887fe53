package model

// Company 公司表，对应 companies
type Company struct {
	ID      uint   `gorm:"primaryKey"                      json:"id"`
	Company string `gorm:"type:varchar(50);not null;unique" json:"company"`
	Address string `gorm:"type:text"                       json:"address"`
	City    string `gorm:"type:varchar(50)"                json:"city"`
	State   string `gorm:"type:varchar(50)"                json:"state"`
	Zip     string `gorm:"type:varchar(20)"                json:"zip"`
	Country string `gorm:"type:varchar(50)"                json:"country"`
	AuditModel
}

// TableName 指定表名
func (Company) TableName() string { return "companies" }

// Department 部门表，对应 departments
type Department struct {
	ID         uint   `gorm:"primaryKey"                      json:"id"`
	Department string `gorm:"type:varchar(50);not null;unique" json:"department"`
	CompanyID  *uint  `json:"company_id"`
	AuditModel

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }

// JobPosition 岗位表，对应 job_positions
type JobPosition struct {
	ID           uint   `gorm:"primaryKey"                      json:"id"`
	JobPosition  string `gorm:"type:varchar(50);not null;unique" json:"job_position"`
	DepartmentID *uint  `json:"department_id"`
	AuditModel

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (JobPosition) TableName() string { return "job_positions" }

// JobRole 职位角色表，对应 job_roles
type JobRole struct {
	ID            uint   `gorm:"primaryKey"                      json:"id"`
	JobRole       string `gorm:"type:varchar(50);not null;unique" json:"job_role"`
	JobPositionID *uint  `json:"job_position_id"`
	AuditModel

	JobPosition *JobPosition `gorm:"foreignKey:JobPositionID" json:"job_position,omitempty"`
}

// TableName 指定表名
func (JobRole) TableName() string { return "job_roles" }

// WorkType 工作类型表，对应 work_types（如 Full Time）
type WorkType struct {
	ID       uint   `gorm:"primaryKey"                      json:"id"`
	WorkType string `gorm:"type:varchar(50);not null;unique" json:"work_type"`
	AuditModel
}

// TableName 指定表名
func (WorkType) TableName() string { return "work_types" }
