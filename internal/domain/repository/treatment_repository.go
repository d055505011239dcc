package repository

import (
	"hms-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Save(db *gorm.DB, treatment *entity.Treatment) error
	FindByAppointmentID(db *gorm.DB, appointmentID uint) (*entity.Treatment, error)
}
