package usecase

import (
	"context"
	"errors"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNotFound      = errors.New("clinic not found")
	ErrClinicAlreadyExists = errors.New("clinic already registered for this doctor")
	ErrClinicNameTaken     = errors.New("clinic name already taken")
)

type ClinicUsecase interface {
	Create(ctx context.Context, userID uint, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error)
	GetByUserID(ctx context.Context, userID uint) (*dto.ClinicResponse, error)
	Update(ctx context.Context, userID uint, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error)
	SendAssistantVerification(ctx context.Context, userID uint) error
	VerifyAssistantMobile(ctx context.Context, userID uint, otp string) error
}

type clinicUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clinicRepo repository.ClinicRepository
	userRepo   repository.UserRepository
	otpService *service.OTPService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	otpService *service.OTPService,
) ClinicUsecase {
	return &clinicUsecase{
		db:         db,
		log:        log,
		clinicRepo: clinicRepo,
		userRepo:   userRepo,
		otpService: otpService,
	}
}

func (u *clinicUsecase) Create(ctx context.Context, userID uint, req *dto.CreateClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	existing, err := u.clinicRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to check existing clinic: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrClinicAlreadyExists
	}

	clinic := &entity.Clinic{
		UserID:          userID,
		Name:            req.Name,
		Address:         req.Address,
		City:            req.City,
		NearBy:          req.NearBy,
		AssistantName:   req.AssistantName,
		AssistantMobile: req.AssistantMobile,
	}

	if err := u.clinicRepo.Create(tx, clinic); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrClinicNameTaken
		}
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	// Clinic creation and the doctor flag move together.
	user.IsClinicAdded = true
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to flag clinic on user: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetByUserID(ctx context.Context, userID uint) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) Update(ctx context.Context, userID uint, req *dto.UpdateClinicRequest) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	if req.Name != "" {
		clinic.Name = req.Name
	}
	if req.Address != "" {
		clinic.Address = req.Address
	}
	if req.City != "" {
		clinic.City = req.City
	}
	if req.NearBy != "" {
		clinic.NearBy = req.NearBy
	}
	if req.AssistantName != "" {
		clinic.AssistantName = req.AssistantName
	}
	if req.AssistantMobile != "" && req.AssistantMobile != clinic.AssistantMobile {
		clinic.AssistantMobile = req.AssistantMobile
		clinic.IsAssistantMobileVerified = false
	}

	if err := u.clinicRepo.Update(u.db.WithContext(ctx), clinic); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrClinicNameTaken
		}
		u.log.Warnf("Failed to update clinic: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) SendAssistantVerification(ctx context.Context, userID uint) error {
	clinic, err := u.clinicRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return err
	}
	if clinic == nil || clinic.AssistantMobile == "" {
		return ErrClinicNotFound
	}

	code, err := u.otpService.Issue(ctx, clinic.AssistantMobile)
	if err != nil {
		return err
	}

	u.log.Infof("Assistant verification OTP issued for %s: %s", clinic.AssistantMobile, code)
	return nil
}

func (u *clinicUsecase) VerifyAssistantMobile(ctx context.Context, userID uint, otp string) error {
	clinic, err := u.clinicRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find clinic: %+v", err)
		return err
	}
	if clinic == nil {
		return ErrClinicNotFound
	}

	if err := u.otpService.Verify(ctx, clinic.AssistantMobile, otp); err != nil {
		return err
	}

	clinic.IsAssistantMobileVerified = true
	if err := u.clinicRepo.Update(u.db.WithContext(ctx), clinic); err != nil {
		u.log.Warnf("Failed to mark assistant mobile verified: %+v", err)
		return err
	}

	return nil
}
