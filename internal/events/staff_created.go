package events

import "time"

const StaffCreatedTopic = "farm.staff.lifecycle.v1"

type StaffCreatedEvent struct {
	EventType  string    `json:"event_type"`
	StaffID    string    `json:"staff_id"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
