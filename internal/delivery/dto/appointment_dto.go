package dto

import "time"

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uint   `json:"doctor_id" validate:"required,min=1"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
}

// PatientUpdateAppointmentRequest reschedules and/or cancels. All fields are
// optional; omitted date/time keep the existing slot value.
type PatientUpdateAppointmentRequest struct {
	Date   string `json:"date" validate:"omitempty"`
	Time   string `json:"time" validate:"omitempty"`
	Status string `json:"status" validate:"omitempty"`
}

// DoctorUpdateAppointmentRequest records the treatment outcome. Status
// defaults to Completed when empty.
type DoctorUpdateAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"required"`
	Prescription string `json:"prescription" validate:"required"`
	Notes        string `json:"notes" validate:"omitempty"`
	Status       string `json:"status" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           uint      `json:"id"`
	DoctorID     uint      `json:"doctor_id"`
	PatientID    uint      `json:"patient_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Status       string    `json:"status"`
	Diagnosis    string    `json:"diagnosis,omitempty"`
	Prescription string    `json:"prescription,omitempty"`
	DoctorName   string    `json:"doctor_name,omitempty"`
	PatientName  string    `json:"patient_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type TreatmentResponse struct {
	ID            uint      `json:"id"`
	AppointmentID uint      `json:"appointment_id"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Prescription  string    `json:"prescription,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
