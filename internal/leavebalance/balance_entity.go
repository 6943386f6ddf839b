package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one row per staff member holding the paid-leave day
// counters. remaining == total - used at all times; every write path
// recomputes or adjusts both sides together.
type LeaveBalance struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_staff"`
	Year    int       `gorm:"type:int;not null"`

	TotalLeaveDays     int `gorm:"type:int;not null;default:0"`
	UsedLeaveDays      int `gorm:"type:int;not null;default:0"`
	RemainingLeaveDays int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}
