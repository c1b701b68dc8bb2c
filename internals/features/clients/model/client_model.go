package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClientModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	Code        string  `gorm:"type:varchar(50);not null;uniqueIndex;column:code" json:"code"`
	CompanyCode *string `gorm:"type:varchar(100);column:company_code" json:"company_code,omitempty"`
	CompanyName string  `gorm:"type:varchar(255);not null;index;column:company_name" json:"company_name"`

	PhoneNumber        *string        `gorm:"type:varchar(20);column:phone_number" json:"phone_number,omitempty"`
	Email              *string        `gorm:"type:varchar(255);column:email"       json:"email,omitempty"`
	HeadquarterAddress *string        `gorm:"column:headquarter_address"           json:"headquarter_address,omitempty"`
	SocialLinks        datatypes.JSON `gorm:"type:jsonb;column:social_links"       json:"social_links,omitempty"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	AssignedSaleID uuid.UUID  `gorm:"type:uuid;not null;index;column:assigned_sale_id" json:"assigned_sale_id"`
	BannerImageID  *uuid.UUID `gorm:"type:uuid;column:banner_image_id" json:"banner_image_id,omitempty"`
	LogoImageID    *uuid.UUID `gorm:"type:uuid;column:logo_image_id"   json:"logo_image_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (ClientModel) TableName() string { return "clients" }
