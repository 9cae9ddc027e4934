package entity

import "time"

// Patient is a person treated at the clinic. Phone and Email drive the
// invoice delivery channel order (SMS first, email fallback).
type Patient struct {
	ID          string
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	Address     string
	DateOfBirth time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName convenience for documents and notifications.
func (p *Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
