package usecase

import (
	"context"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/pkg/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	List(ctx context.Context, filter *entity.DoctorFilter) ([]dto.DoctorSummaryResponse, *response.Meta, error)
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, userRepo repository.UserRepository) DoctorUsecase {
	return &doctorUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

// List is the back-office doctor listing with per-doctor delivered and closed
// prescription counts.
func (u *doctorUsecase) List(ctx context.Context, filter *entity.DoctorFilter) ([]dto.DoctorSummaryResponse, *response.Meta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	summaries, total, err := u.userRepo.FindAllWithCounts(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}

	meta := &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return converter.DoctorSummariesToResponses(summaries), meta, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.UserToResponse(doctor), nil
}
