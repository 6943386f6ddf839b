package leave

import (
	"time"

	"github.com/google/uuid"
)

type LeaveRequest struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_staff_dates"`

	LeaveType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_staff_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_staff_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Staff *StaffRef `gorm:"foreignKey:StaffID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

type StaffRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	Email    string    `gorm:"column:email"`
}

func (StaffRef) TableName() string {
	return "staff"
}
