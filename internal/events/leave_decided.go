package events

import "time"

const LeaveDecidedTopic = "farm.leave.decision.v1"

// LeaveDecidedEvent is published when a request leaves the PENDING state
// through an admin decision. Downstream systems (reporting, rostering)
// consume it; this service only produces it.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	StaffID    string    `json:"staff_id"`
	Status     string    `json:"status"`
	TotalDays  int       `json:"total_days"`
	OccurredAt time.Time `json:"occurred_at"`
}
