package repository

import (
	"hms-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appt *entity.Appointment) error
	Update(db *gorm.DB, appt *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uint) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uint) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// SlotTaken reports whether any appointment occupies the
	// (doctorID, date, time) slot, regardless of status. excludeID skips one
	// appointment (0 means no exclusion) so reschedules don't conflict with
	// themselves.
	SlotTaken(db *gorm.DB, doctorID uint, date, time string, excludeID uint) (bool, error)
	Count(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.AppointmentStatus) (int64, error)
}
