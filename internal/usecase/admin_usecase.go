package usecase

import (
	"context"
	"errors"
	"fmt"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/pkg/jwt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrAdminNotFound         = errors.New("admin not found")
)

type AdminUsecase interface {
	Register(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AdminResponse, error)
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.AdminResponse, error)
	ChangePassword(ctx context.Context, id uint, req *dto.ChangePasswordRequest) error
}

type adminUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	adminRepo   repository.AdminRepository
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminRepo repository.AdminRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AdminUsecase {
	return &adminUsecase{
		db:          db,
		log:         log,
		adminRepo:   adminRepo,
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (u *adminUsecase) Register(ctx context.Context, req *dto.RegisterAdminRequest) (*dto.AdminResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	admin := &entity.Admin{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := u.adminRepo.Create(u.db.WithContext(ctx), admin); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) Login(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	admin, err := u.adminRepo.FindByUsername(u.db.WithContext(ctx), req.Username)
	if err != nil {
		u.log.Warnf("Failed to find admin by username: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(admin.ID, jwt.RoleAdmin, "")
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(admin.ID, jwt.RoleAdmin, "")
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%d:%s", admin.ID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%d:%s", admin.ID, refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

func (u *adminUsecase) GetByID(ctx context.Context, id uint) (*dto.AdminResponse, error) {
	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}

	return converter.AdminToResponse(admin), nil
}

func (u *adminUsecase) ChangePassword(ctx context.Context, id uint, req *dto.ChangePasswordRequest) error {
	admin, err := u.adminRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find admin by ID: %+v", err)
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	admin.Password = string(hashedPassword)
	if err := u.adminRepo.Update(u.db.WithContext(ctx), admin); err != nil {
		u.log.Warnf("Failed to change admin password: %+v", err)
		return err
	}

	return nil
}
