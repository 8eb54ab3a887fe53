package model

// User 登录账号表，对应 users
// 员工通过 employees.employee_user_id 关联到账号
type User struct {
	ID           uint   `gorm:"primaryKey"                        json:"id"`
	Username     string `gorm:"type:varchar(150);not null;unique" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"        json:"-"`
	IsActive     bool   `gorm:"not null;default:true"             json:"is_active"`
	IsSuperuser  bool   `gorm:"not null;default:false"            json:"is_superuser"`
	BaseModel

	// 关联
	Permissions []Permission `gorm:"many2many:user_permissions" json:"permissions,omitempty"`
	Groups      []Group      `gorm:"many2many:user_groups"      json:"groups,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// Permission 权限表，对应 permissions，codename 形如 attendance.view_attendance
type Permission struct {
	ID       uint   `gorm:"primaryKey"                        json:"id"`
	Codename string `gorm:"type:varchar(100);not null;unique" json:"codename"`
	Name     string `gorm:"type:varchar(255);not null"        json:"name"`
}

// TableName 指定表名
func (Permission) TableName() string { return "permissions" }

// Group 权限组表，对应 auth_groups（groups 在 MySQL 8 中为保留字）
type Group struct {
	ID          uint         `gorm:"primaryKey"                        json:"id"`
	Name        string       `gorm:"type:varchar(150);not null;unique" json:"name"`
	Permissions []Permission `gorm:"many2many:group_permissions"       json:"permissions,omitempty"`
}

// TableName 指定表名
func (Group) TableName() string { return "auth_groups" }
