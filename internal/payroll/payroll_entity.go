package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Payroll struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_staff_period" json:"staff_id"`
	Period     time.Time  `gorm:"type:date;not null;uniqueIndex:uq_payroll_staff_period" json:"period"`
	Salary     int64      `gorm:"not null" json:"salary"`
	Bonus      int64      `gorm:"not null;default:0" json:"bonus"`
	Deductions int64      `gorm:"not null;default:0" json:"deductions"`
	PaidOn     *time.Time `gorm:"type:date" json:"paid_on,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Staff *StaffRef `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type StaffRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

func (StaffRef) TableName() string {
	return "staff"
}
