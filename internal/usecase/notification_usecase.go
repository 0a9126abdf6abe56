package usecase

import (
	"context"
	"errors"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const recentNotificationLimit = 5

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	List(ctx context.Context, limit int) ([]dto.NotificationResponse, error)
	Recent(ctx context.Context) ([]dto.NotificationResponse, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id uint) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	notification := &entity.Notification{
		UserID:  req.UserID,
		Message: req.Message,
	}

	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}

	return converter.NotificationToResponse(notification), nil
}

func (u *notificationUsecase) List(ctx context.Context, limit int) ([]dto.NotificationResponse, error) {
	notifications, err := u.notificationRepo.FindAll(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}

	return converter.NotificationsToResponses(notifications), nil
}

func (u *notificationUsecase) Recent(ctx context.Context) ([]dto.NotificationResponse, error) {
	return u.List(ctx, recentNotificationLimit)
}

func (u *notificationUsecase) ListByUser(ctx context.Context, userID uint) ([]dto.NotificationResponse, error) {
	notifications, err := u.notificationRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list user notifications: %+v", err)
		return nil, err
	}

	return converter.NotificationsToResponses(notifications), nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, id uint) (*dto.NotificationResponse, error) {
	notification, err := u.notificationRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find notification: %+v", err)
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}

	notification.Read = true
	if err := u.notificationRepo.Update(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return nil, err
	}

	return converter.NotificationToResponse(notification), nil
}

func (u *notificationUsecase) Delete(ctx context.Context, id uint) error {
	deleted, err := u.notificationRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete notification: %+v", err)
		return err
	}
	if deleted == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
