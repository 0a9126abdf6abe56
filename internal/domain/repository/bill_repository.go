package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type BillRepository interface {
	Create(db *gorm.DB, bill *entity.Bill) error
	FindByID(db *gorm.DB, id uint) (*entity.Bill, error)
	FindByPrescriptionID(db *gorm.DB, prescriptionID uint) (*entity.Bill, error)
	Update(db *gorm.DB, bill *entity.Bill) error
	CountByPrescriptionID(db *gorm.DB, prescriptionID uint) (int64, error)
}
