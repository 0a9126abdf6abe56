package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(db *gorm.DB, clinic *entity.Clinic) error
	FindByID(db *gorm.DB, id uint) (*entity.Clinic, error)
	FindByName(db *gorm.DB, name string) (*entity.Clinic, error)
	FindByUserID(db *gorm.DB, userID uint) (*entity.Clinic, error)
	Update(db *gorm.DB, clinic *entity.Clinic) error
}
