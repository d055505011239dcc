package entity

import "time"

// User is the single account table; the role tag decides what the account
// may do. Roles are fixed after creation.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(120);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;index" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Doctor-only fields
	Specialization string `gorm:"type:varchar(200)" json:"specialization,omitempty"`
	DepartmentID   *uint  `gorm:"index" json:"department_id,omitempty"`

	// Relationships
	Department            *Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	AppointmentsAsPatient []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	AppointmentsAsDoctor  []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}

func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}
