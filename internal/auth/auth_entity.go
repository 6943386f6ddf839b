package auth

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_users_staff" json:"staff_id"`
	Email        string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_users_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// StaffAccount is the slice of the staff row the auth flow needs to
// stamp claims and gate inactive accounts.
type StaffAccount struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string
	Role     string
	IsActive bool
}

func (StaffAccount) TableName() string {
	return "staff"
}
