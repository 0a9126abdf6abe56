package repository

import (
	"errors"

	"rxcourier/internal/domain/entity"
	domainRepo "rxcourier/internal/domain/repository"

	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByID(db *gorm.DB, id uint) (*entity.Notification, error) {
	var notification entity.Notification
	err := db.Where("notification_id = ?", id).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) FindAll(db *gorm.DB, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	query := db.Preload("User").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) FindByUserID(db *gorm.DB, userID uint) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := db.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) Update(db *gorm.DB, notification *entity.Notification) error {
	return db.Omit("User").Save(notification).Error
}

func (r *notificationRepository) Delete(db *gorm.DB, id uint) (int64, error) {
	result := db.Where("notification_id = ?", id).Delete(&entity.Notification{})
	return result.RowsAffected, result.Error
}
