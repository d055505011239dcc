package repository

import (
	"hms-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, dept *entity.Department) error
	FindAll(db *gorm.DB) ([]entity.Department, error)
}
