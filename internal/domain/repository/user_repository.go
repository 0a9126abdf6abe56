package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByMobile(db *gorm.DB, mobile string) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAllWithCounts(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorSummary, int64, error)
	FindAllBrief(db *gorm.DB) ([]entity.User, int64, error)
	Update(db *gorm.DB, user *entity.User) error
	Count(db *gorm.DB) (int64, error)
}
