package entity

import "time"

// Treatment is the clinical record written by the treating doctor, tied 1:1
// to its appointment. It has no lifecycle of its own.
type Treatment struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AppointmentID uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:varchar(500)" json:"diagnosis,omitempty"`
	Prescription  string    `gorm:"type:varchar(500)" json:"prescription,omitempty"`
	Notes         string    `gorm:"type:varchar(500)" json:"notes,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

func (Treatment) TableName() string {
	return "treatments"
}
