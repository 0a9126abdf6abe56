package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(db *gorm.DB, admin *entity.Admin) error
	FindByID(db *gorm.DB, id uint) (*entity.Admin, error)
	FindByUsername(db *gorm.DB, username string) (*entity.Admin, error)
	Update(db *gorm.DB, admin *entity.Admin) error
}
