package events

import "time"

const EmployeeCreatedTopic = "rh.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Matricule  string    `json:"matricule"`
	OccurredAt time.Time `json:"occurred_at"`
}
