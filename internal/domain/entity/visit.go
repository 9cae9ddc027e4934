package entity

import "time"

// Visit is a clinical encounter; a bill may be created from it.
type Visit struct {
	ID        string
	PatientID string
	VisitDate time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
