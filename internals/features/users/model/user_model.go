package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoleModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Role string    `gorm:"type:varchar(20);not null;uniqueIndex;column:role" json:"role"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RoleModel) TableName() string { return "roles" }

type UserModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	RoleID uuid.UUID  `gorm:"type:uuid;not null;index;column:role_id" json:"role_id"`
	Role   *RoleModel `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	FirstName   string    `gorm:"type:varchar(100);not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null;column:last_name"  json:"last_name"`
	DOB         time.Time `gorm:"type:date;not null;column:dob"                json:"dob"`
	Address     string    `gorm:"not null;column:address"                      json:"address"`
	Gender      string    `gorm:"type:varchar(10);not null;column:gender"      json:"gender"`
	Nationality string    `gorm:"type:varchar(100);not null;column:nationality" json:"nationality"`

	IsSuspended bool `gorm:"not null;default:false;index;column:is_suspended" json:"is_suspended"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) FullName() string { return u.FirstName + " " + u.LastName }
