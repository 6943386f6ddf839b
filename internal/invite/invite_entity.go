package invite

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusExpired   = "EXPIRED"
	StatusCancelled = "CANCELLED"
)

type Invite struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string     `gorm:"type:varchar(150);not null;index" json:"email"`
	Role        string     `gorm:"type:varchar(20);not null" json:"role"`
	Token       string     `gorm:"type:varchar(64);not null;uniqueIndex:uq_invites_token" json:"-"`
	ExpiresAt   time.Time  `gorm:"not null" json:"expires_at"`
	IsUsed      bool       `gorm:"not null;default:false" json:"is_used"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	InvitedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"invited_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Invite) TableName() string {
	return "invites"
}

// ComputedStatus derives the invite state; nothing is stored beyond the
// used/cancelled flags, so an invite expires without any background job.
// An invite expiring exactly at now is still PENDING.
func (i Invite) ComputedStatus(now time.Time) string {
	switch {
	case i.IsUsed:
		return StatusAccepted
	case i.CancelledAt != nil:
		return StatusCancelled
	case i.ExpiresAt.Before(now):
		return StatusExpired
	default:
		return StatusPending
	}
}
