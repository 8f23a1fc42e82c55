package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FullName  string         `gorm:"column:full_name;type:text" json:"full_name"`
	Timezone  string         `gorm:"type:text;not null;default:'UTC'" json:"timezone"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLogin *time.Time     `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "app_user" }
