package repository

import (
	"hms-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindByUsernameOrEmail(db *gorm.DB, username, email string) (*entity.User, error)
	FindByRole(db *gorm.DB, role string) ([]entity.User, error)
	CountByRole(db *gorm.DB, role string) (int64, error)
}
