package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StaffNumber string         `gorm:"type:varchar(20);not null;uniqueIndex:uq_staff_number" json:"staff_number"`
	FullName    string         `gorm:"type:varchar(150);not null" json:"full_name"`
	Email       string         `gorm:"type:varchar(150);not null;uniqueIndex:uq_staff_email" json:"email"`
	Phone       string         `gorm:"type:varchar(30)" json:"phone"`
	Role        string         `gorm:"type:varchar(20);not null" json:"role"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	HiredAt     *time.Time     `gorm:"type:date" json:"hired_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Staff) TableName() string {
	return "staff"
}
