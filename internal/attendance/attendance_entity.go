package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent   = "PRESENT"
	StatusCompleted = "COMPLETED"
)

type AttendanceRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StaffID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_attendance_staff_day" json:"staff_id"`
	WorkDate   time.Time  `gorm:"type:date;not null;index:idx_attendance_staff_day" json:"work_date"`
	CheckInAt  time.Time  `gorm:"not null" json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at,omitempty"`
	Hours      *float64   `json:"hours,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Staff *StaffRef `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

type StaffRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

func (StaffRef) TableName() string {
	return "staff"
}
