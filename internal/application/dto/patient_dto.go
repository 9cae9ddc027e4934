package dto

import "time"

// CreatePatientRequest body for POST /api/patients.
type CreatePatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
}

// UpdatePatientRequest body for PUT /api/patients/:id (partial).
type UpdatePatientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// PatientResponse patient in responses.
type PatientResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateVisitRequest body for POST /api/visits.
type CreateVisitRequest struct {
	PatientID string `json:"patient_id"`
	VisitDate string `json:"visit_date,omitempty"` // YYYY-MM-DD, defaults to today
	Notes     string `json:"notes,omitempty"`
}

// VisitResponse visit in responses.
type VisitResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	VisitDate string    `json:"visit_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
