package events

import "time"

const VisaDossierTopic = "rh.visa.dossier.v1"

type VisaDossierCreatedEvent struct {
	EventType     string    `json:"event_type"`
	DossierID     string    `json:"dossier_id"`
	EmployeeID    string    `json:"employee_id"`
	Motif         string    `json:"motif"`
	DepartureDate string    `json:"departure_date"`
	ReturnDate    string    `json:"return_date"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type VisaDossierStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	DossierID  string    `json:"dossier_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}
