package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rxcourier/config"
	"rxcourier/internal/delivery/dto"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/repository"
	"rxcourier/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgjwt "rxcourier/pkg/jwt"
)

func setupAuthUsecase(t *testing.T) (AuthUsecase, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Notification{},
		&entity.AuditLog{},
	))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logrus.New()
	jwtService := pkgjwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	uc := NewAuthUsecase(
		db,
		log,
		repository.NewUserRepository(),
		repository.NewNotificationRepository(),
		service.NewAuditService(db, log, repository.NewAuditLogRepository()),
		service.NewOTPService(redisClient, log, 5*time.Minute),
		jwtService,
		redisClient,
	)
	return uc, db, mr
}

func registerDoctor(t *testing.T, uc AuthUsecase, mobile string) *dto.UserResponse {
	t.Helper()

	resp, err := uc.Register(context.Background(), &dto.RegisterDoctorRequest{
		Firstname: "Meera",
		Lastname:  "Iyer",
		Mobile:    mobile,
		Password:  "secret-pass-1",
	})
	require.NoError(t, err)
	return resp
}

func TestAuthRegister(t *testing.T) {
	uc, db, _ := setupAuthUsecase(t)

	resp := registerDoctor(t, uc, "9876543210")
	assert.Equal(t, "Meera", resp.Firstname)
	assert.Equal(t, "9876543210", resp.Mobile)

	// Password never echoes back and is stored hashed.
	var stored entity.User
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.NotEqual(t, "secret-pass-1", stored.Password)
	assert.NotEmpty(t, stored.Password)

	_, err := uc.Register(context.Background(), &dto.RegisterDoctorRequest{
		Firstname: "Rahul",
		Lastname:  "Shah",
		Mobile:    "9876543210",
		Password:  "another-pass-1",
	})
	assert.ErrorIs(t, err, ErrMobileAlreadyExists)
}

func TestAuthLogin(t *testing.T) {
	uc, _, mr := setupAuthUsecase(t)
	ctx := context.Background()

	registerDoctor(t, uc, "9876543210")

	tokens, err := uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotZero(t, tokens.ExpiresIn)

	// Both tokens land in Redis under the user's key space.
	assert.Len(t, mr.Keys(), 2)

	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "0000000000", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthRefreshTokenIsOneShot(t *testing.T) {
	uc, _, _ := setupAuthUsecase(t)
	ctx := context.Background()

	registerDoctor(t, uc, "9876543210")
	tokens, err := uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The spent refresh token is dead.
	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// An access token is not accepted in the refresh slot.
	_, err = uc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: refreshed.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthPasswordResetFlow(t *testing.T) {
	uc, _, mr := setupAuthUsecase(t)
	ctx := context.Background()

	registerDoctor(t, uc, "9876543210")
	_, err := uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	require.NoError(t, err)

	require.NoError(t, uc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Mobile: "9876543210"}))

	code, err := mr.Get("otp:9876543210")
	require.NoError(t, err)
	require.Len(t, code, 6)

	require.NoError(t, uc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Mobile:      "9876543210",
		OTP:         code,
		NewPassword: "brand-new-pass",
	}))

	// Every session dies with the reset.
	assert.Empty(t, mr.Keys())

	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestAuthVerifyOTPThenReset(t *testing.T) {
	uc, _, mr := setupAuthUsecase(t)
	ctx := context.Background()

	registerDoctor(t, uc, "9876543210")
	require.NoError(t, uc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Mobile: "9876543210"}))

	code, err := mr.Get("otp:9876543210")
	require.NoError(t, err)

	// The app verifies the code on its own screen before asking for the new
	// password; the code must survive until the reset spends it.
	require.NoError(t, uc.VerifyOTP(ctx, &dto.VerifyOTPRequest{Mobile: "9876543210", OTP: code}))

	require.NoError(t, uc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Mobile:      "9876543210",
		OTP:         code,
		NewPassword: "brand-new-pass",
	}))

	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestAuthResetPasswordBadOTP(t *testing.T) {
	uc, _, _ := setupAuthUsecase(t)
	ctx := context.Background()

	registerDoctor(t, uc, "9876543210")
	require.NoError(t, uc.ForgotPassword(ctx, &dto.ForgotPasswordRequest{Mobile: "9876543210"}))

	err := uc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Mobile:      "9876543210",
		OTP:         "999999",
		NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, service.ErrOTPMismatch)
}

func TestAuthForgotPasswordUnknownMobile(t *testing.T) {
	uc, _, _ := setupAuthUsecase(t)

	err := uc.ForgotPassword(context.Background(), &dto.ForgotPasswordRequest{Mobile: "0000000000"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthVerifyMobile(t *testing.T) {
	uc, db, mr := setupAuthUsecase(t)
	ctx := context.Background()

	resp := registerDoctor(t, uc, "9876543210")

	require.NoError(t, uc.SendMobileVerification(ctx, resp.ID))
	code, err := mr.Get("otp:9876543210")
	require.NoError(t, err)

	require.NoError(t, uc.VerifyMobile(ctx, resp.ID, code))

	var stored entity.User
	require.NoError(t, db.First(&stored, resp.ID).Error)
	assert.True(t, stored.IsMobileVerify)
}

func TestAuthChangePassword(t *testing.T) {
	uc, _, _ := setupAuthUsecase(t)
	ctx := context.Background()

	resp := registerDoctor(t, uc, "9876543210")

	err := uc.ChangePassword(ctx, resp.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "brand-new-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, uc.ChangePassword(ctx, resp.ID, &dto.ChangePasswordRequest{
		OldPassword: "secret-pass-1",
		NewPassword: "brand-new-pass",
	}))

	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "brand-new-pass"})
	assert.NoError(t, err)
}

func TestAuthDeleteAccount(t *testing.T) {
	uc, _, mr := setupAuthUsecase(t)
	ctx := context.Background()

	resp := registerDoctor(t, uc, "9876543210")
	_, err := uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(ctx, resp.ID))

	// Sessions are revoked and the account stops authenticating.
	assert.Empty(t, mr.Keys())
	_, err = uc.Login(ctx, &dto.LoginRequest{Mobile: "9876543210", Password: "secret-pass-1"})
	assert.ErrorIs(t, err, ErrAccountRemoved)

	_, err = uc.GetCurrentUser(ctx, resp.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthSocialLoginProvisions(t *testing.T) {
	uc, db, _ := setupAuthUsecase(t)
	ctx := context.Background()

	tokens, err := uc.SocialLogin(ctx, &dto.SocialLoginRequest{
		SocialMediaID: "google-123",
		LoginMethod:   "google",
		Firstname:     "Meera",
		Email:         "meera@example.com",
		Mobile:        "9876543210",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	var total int64
	require.NoError(t, db.Model(&entity.User{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	// A second sign-in reuses the account.
	_, err = uc.SocialLogin(ctx, &dto.SocialLoginRequest{
		SocialMediaID: "google-123",
		LoginMethod:   "google",
		Email:         "meera@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.User{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestAuthUpdateDetails(t *testing.T) {
	uc, _, _ := setupAuthUsecase(t)
	ctx := context.Background()

	resp := registerDoctor(t, uc, "9876543210")

	updated, err := uc.UpdateDetails(ctx, resp.ID, &dto.UpdateUserRequest{
		Designation: "Cardiologist",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cardiologist", updated.Designation)
	// Untouched fields survive.
	assert.Equal(t, "Meera", updated.Firstname)

	_, err = uc.UpdateDetails(ctx, 999, &dto.UpdateUserRequest{Firstname: "X"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
