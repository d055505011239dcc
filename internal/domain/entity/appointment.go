package entity

import "time"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "Booked"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a booked slot for a doctor. Date and time are kept
// as opaque strings; a slot is the (doctor_id, date, time) tuple and slot
// uniqueness is enforced by the booking usecase, not a schema constraint.
// Appointments are never physically deleted.
type Appointment struct {
	ID           uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID     uint              `gorm:"not null;index:idx_appointments_slot" json:"doctor_id"`
	PatientID    uint              `gorm:"not null;index" json:"patient_id"`
	Date         string            `gorm:"type:varchar(20);not null;index:idx_appointments_slot" json:"date"`
	Time         string            `gorm:"type:varchar(20);not null;index:idx_appointments_slot" json:"time"`
	Status       AppointmentStatus `gorm:"type:varchar(50);not null;default:'Booked';index" json:"status"`
	Diagnosis    string            `gorm:"type:varchar(500)" json:"diagnosis,omitempty"`
	Prescription string            `gorm:"type:varchar(500)" json:"prescription,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor    User       `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient   User       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Treatment *Treatment `gorm:"foreignKey:AppointmentID" json:"treatment,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsBooked checks if the appointment is still booked
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment has been completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// ValidPatientStatus reports whether a patient may set the given status.
// Completed is reserved for the treating doctor.
func ValidPatientStatus(s AppointmentStatus) bool {
	return s == AppointmentStatusBooked || s == AppointmentStatusCancelled
}
