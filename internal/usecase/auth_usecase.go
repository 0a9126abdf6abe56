package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rxcourier/internal/converter"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/domain/repository"
	"rxcourier/internal/service"
	"rxcourier/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrMobileAlreadyExists = errors.New("mobile number already registered")
	ErrInvalidCredentials  = errors.New("invalid mobile or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountRemoved      = errors.New("account has been removed")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	SocialLogin(ctx context.Context, req *dto.SocialLoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error
	SendMobileVerification(ctx context.Context, userID uint) error
	VerifyMobile(ctx context.Context, userID uint, otp string) error
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
	UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteAccount(ctx context.Context, userID uint) error
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	auditService     service.AuditService
	otpService       *service.OTPService
	jwtService       *jwt.JWTService
	redisClient      *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	auditService service.AuditService,
	otpService *service.OTPService,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		auditService:     auditService,
		otpService:       otpService,
		jwtService:       jwtService,
		redisClient:      redisClient,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Mobile:      req.Mobile,
		Email:       req.Email,
		Designation: req.Designation,
		Password:    string(hashedPassword),
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "mobile") {
			return nil, ErrMobileAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, "doctor",
		entity.AuditActionDoctorRegister, "user",
		fmt.Sprintf("%d", user.ID), user.Mobile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Best effort: the back office learns about the new doctor, but a failed
	// notification never undoes the registration.
	notification := &entity.Notification{
		UserID:  user.ID,
		Message: fmt.Sprintf("New doctor %s %s added", user.Firstname, user.Lastname),
	}
	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create registration notification: %+v", err)
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByMobile(u.db.WithContext(ctx), req.Mobile)
	if err != nil {
		u.log.Warnf("Failed to find user by mobile: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.Removed {
		return nil, ErrAccountRemoved
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user.ID, jwt.RoleDoctor, user.Mobile)
}

func (u *authUsecase) SocialLogin(ctx context.Context, req *dto.SocialLoginRequest) (*dto.TokenResponse, error) {
	var user *entity.User
	var err error

	if req.Email != "" {
		user, err = u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
		if err != nil {
			u.log.Warnf("Failed to find user by email: %+v", err)
			return nil, err
		}
	}
	if user == nil && req.Mobile != "" {
		user, err = u.userRepo.FindByMobile(u.db.WithContext(ctx), req.Mobile)
		if err != nil {
			u.log.Warnf("Failed to find user by mobile: %+v", err)
			return nil, err
		}
	}

	if user == nil {
		// First social sign-in provisions the account.
		user = &entity.User{
			Firstname:     req.Firstname,
			Lastname:      req.Lastname,
			Mobile:        req.Mobile,
			Email:         req.Email,
			SocialMediaID: req.SocialMediaID,
			LoginMethod:   req.LoginMethod,
		}
		if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
			if isDuplicateKeyError(err, "mobile") {
				return nil, ErrMobileAlreadyExists
			}
			u.log.Warnf("Failed to create social user: %+v", err)
			return nil, err
		}
	} else {
		if user.Removed {
			return nil, ErrAccountRemoved
		}
		user.SocialMediaID = req.SocialMediaID
		user.LoginMethod = req.LoginMethod
		if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
			u.log.Warnf("Failed to update social login: %+v", err)
			return nil, err
		}
	}

	return u.issueTokens(ctx, user.ID, jwt.RoleDoctor, user.Mobile)
}

func (u *authUsecase) Logout(ctx context.Context, accessTokenID, refreshToken string) error {
	patterns := []string{fmt.Sprintf("access_token:*:%s", accessTokenID)}

	// The refresh token travels in the body; revoke it too when present.
	if refreshToken != "" {
		if claims, err := u.jwtService.ValidateToken(refreshToken); err == nil {
			patterns = append(patterns, fmt.Sprintf("refresh_token:*:%s", claims.TokenID))
		}
	}

	for _, pattern := range patterns {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%d:%s", claims.UserID, claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// One-shot refresh tokens: the old one dies with its use.
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.Role, claims.Mobile)
}

func (u *authUsecase) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	user, err := u.userRepo.FindByMobile(u.db.WithContext(ctx), req.Mobile)
	if err != nil {
		u.log.Warnf("Failed to find user by mobile: %+v", err)
		return err
	}
	if user == nil || user.Removed {
		return ErrUserNotFound
	}

	code, err := u.otpService.Issue(ctx, req.Mobile)
	if err != nil {
		return err
	}

	// SMS delivery is an external sink; the code is logged until the gateway
	// is wired up.
	u.log.Infof("Password reset OTP issued for %s: %s", req.Mobile, code)
	return nil
}

// VerifyOTP confirms a pending code without consuming it; the code is spent by
// the reset or mobile-verification step that follows.
func (u *authUsecase) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) error {
	return u.otpService.Check(ctx, req.Mobile, req.OTP)
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := u.otpService.Verify(ctx, req.Mobile, req.OTP); err != nil {
		return err
	}

	user, err := u.userRepo.FindByMobile(u.db.WithContext(ctx), req.Mobile)
	if err != nil {
		u.log.Warnf("Failed to find user by mobile: %+v", err)
		return err
	}
	if user == nil || user.Removed {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to reset password: %+v", err)
		return err
	}

	return u.revokeAllUserTokens(ctx, user.ID)
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to change password: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) SendMobileVerification(ctx context.Context, userID uint) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := u.otpService.Issue(ctx, user.Mobile)
	if err != nil {
		return err
	}

	u.log.Infof("Mobile verification OTP issued for %s: %s", user.Mobile, code)
	return nil
}

func (u *authUsecase) VerifyMobile(ctx context.Context, userID uint, otp string) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.otpService.Verify(ctx, user.Mobile, otp); err != nil {
		return err
	}

	user.IsMobileVerify = true
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to mark mobile verified: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Firstname != "" {
		user.Firstname = req.Firstname
	}
	if req.Lastname != "" {
		user.Lastname = req.Lastname
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Designation != "" {
		user.Designation = req.Designation
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update user details: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Soft delete: prescriptions and bills keep their doctor reference.
	user.Removed = true
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to remove account: %+v", err)
		return err
	}

	return u.revokeAllUserTokens(ctx, userID)
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uint, role, mobile string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, role, mobile)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, role, mobile)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%d:%s", userID, accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%d:%s", userID, refreshTokenID)

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

func (u *authUsecase) revokeAllUserTokens(ctx context.Context, userID uint) error {
	for _, pattern := range []string{
		fmt.Sprintf("access_token:%d:*", userID),
		fmt.Sprintf("refresh_token:%d:*", userID),
	} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	return nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite in tests reports unique violations as plain strings
	return strings.Contains(err.Error(), "UNIQUE constraint failed") &&
		strings.Contains(err.Error(), constraintName)
}
