package events

import "time"

const LeaveLifecycleTopic = "grh.leave.lifecycle.v1"

const (
	LeaveRequestedEvent = "leave.requested"
	LeaveDecidedEvent   = "leave.decided"
)

// LeaveEvent is published on LeaveLifecycleTopic, keyed by leave id.
// Dates use the YYYY-MM-DD wire format.
type LeaveEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     int64     `json:"leave_id"`
	EmployeeID  int64     `json:"employee_id"`
	Status      string    `json:"status"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	ActorUserID int64     `json:"actor_user_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}
