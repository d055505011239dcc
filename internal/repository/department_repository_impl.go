package repository

import (
	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(db *gorm.DB, dept *entity.Department) error {
	return db.Create(dept).Error
}

func (r *departmentRepository) FindAll(db *gorm.DB) ([]entity.Department, error) {
	var depts []entity.Department
	err := db.Order("name ASC").Find(&depts).Error
	if err != nil {
		return nil, err
	}
	return depts, nil
}
