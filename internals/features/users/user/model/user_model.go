package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kostku_backend/internals/constants"
)

// Role user di aplikasi kost (lihat internals/constants).
const (
	RolePenyewa = constants.RolePenyewa
	RoleOwner   = constants.RoleOwner
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"id"`
	UserName  string    `gorm:"column:user_name;size:50;not null" json:"user_name"`
	Email     string    `gorm:"column:user_email;size:255;unique;not null" json:"email"`
	Password  string    `gorm:"column:user_password;not null" json:"-"`
	Phone     *string   `gorm:"column:user_phone;size:30" json:"phone,omitempty"`
	Role      string    `gorm:"column:user_role;type:varchar(20);not null;default:'penyewa'" json:"role"`
	IsActive  bool      `gorm:"column:user_is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RolePenyewa
	}
	return nil
}
