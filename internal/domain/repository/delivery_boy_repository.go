package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type DeliveryBoyRepository interface {
	Create(db *gorm.DB, deliveryBoy *entity.DeliveryBoy) error
	FindByID(db *gorm.DB, id uint) (*entity.DeliveryBoy, error)
	FindByMobile(db *gorm.DB, mobile string) (*entity.DeliveryBoy, error)
	FindAllWithDispatchCount(db *gorm.DB) ([]entity.DeliveryBoySummary, error)
	Update(db *gorm.DB, deliveryBoy *entity.DeliveryBoy) error
}
