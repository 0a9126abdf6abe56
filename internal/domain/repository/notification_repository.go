package repository

import (
	"rxcourier/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByID(db *gorm.DB, id uint) (*entity.Notification, error)
	FindAll(db *gorm.DB, limit int) ([]entity.Notification, error)
	FindByUserID(db *gorm.DB, userID uint) ([]entity.Notification, error)
	Update(db *gorm.DB, notification *entity.Notification) error
	Delete(db *gorm.DB, id uint) (int64, error)
}
